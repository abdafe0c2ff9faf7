// Package aspif reads and writes the aspif wire format of §6: the
// line-oriented, whitespace-separated numeric interchange format used
// to hand a grounded program to the solver core. It follows the same
// streaming-reader shape as internal/dimacs (built over the real
// github.com/rhartert/dimacs parser for CNF); aspif has no equivalent
// published Go parser in the example pack, so this package is a
// hand-rolled scanner grounded directly on §6's directive grammar.
package aspif

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// HeadType distinguishes a rule's head shape (§6: "head-type 0 is
// disjunctive, 1 is choice").
type HeadType int

const (
	HeadDisjunctive HeadType = 0
	HeadChoice      HeadType = 1
)

// BodyType distinguishes a rule's body encoding.
type BodyType int

const (
	BodyNormal BodyType = 0
	BodyWeight BodyType = 1
)

// WeightedLiteral pairs a body literal with its weight; normal bodies
// use weight 1 for every literal.
type WeightedLiteral struct {
	Literal int
	Weight  int
}

// Rule is directive 1.
type Rule struct {
	Head     []int
	HeadType HeadType
	BodyType BodyType
	Bound    int // only meaningful for BodyWeight
	Body     []WeightedLiteral
}

// Minimise is directive 2: minimise the weighted sum of Literals,
// grouped by priority.
type Minimise struct {
	Priority int
	Literals []WeightedLiteral
}

// Project is directive 3: the given atoms form (part of) the
// projection set.
type Project struct {
	Atoms []int
}

// Output is directive 4: associate a textual name with a condition
// (conjunction of literals).
type Output struct {
	Name      string
	Condition []int
}

// External is directive 5: declare an atom's external truth value.
type External struct {
	Atom  int
	Value int // 0 free, 1 true, 2 false, 3 release
}

// Assume is directive 6: literals assumed true for the next solve.
type Assume struct {
	Literals []int
}

// Heuristic is directive 7: a decision-heuristic modifier on an atom.
type Heuristic struct {
	Modifier  int
	Atom      int
	Value     int
	Priority  int
	Condition []int
}

// Edge is directive 8: an acyclicity-checking edge between two nodes,
// guarded by a condition.
type Edge struct {
	U, V      int
	Condition []int
}

// Theory is directive 9: a raw theory-atom/term record, passed through
// uninterpreted (§6 treats theory data as opaque to the core).
type Theory struct {
	Fields []int
}

// Statement is any one of the nine directive payload types above.
type Statement interface{ aspifStatement() }

func (Rule) aspifStatement()      {}
func (Minimise) aspifStatement()  {}
func (Project) aspifStatement()   {}
func (Output) aspifStatement()    {}
func (External) aspifStatement()  {}
func (Assume) aspifStatement()    {}
func (Heuristic) aspifStatement() {}
func (Edge) aspifStatement()      {}
func (Theory) aspifStatement()    {}

// Program is a parsed aspif stream, in directive order.
type Program struct {
	Statements []Statement
}

// Read parses an aspif stream from r. It does not validate atom ids
// against a declared count (aspif has none): callers wire Statements
// into whatever atom/body builder they use (e.g. internal/depgraph).
func Read(r io.Reader) (*Program, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	p := &Program{}
	lineNo := 0
	nonEmpty := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		nonEmpty++
		fields := strings.Fields(line)
		// The first non-empty line is the format header ("asp <major> <minor> <revision>");
		// skip it rather than parsing it as a directive.
		if nonEmpty == 1 && fields[0] == "asp" {
			continue
		}
		if len(fields) == 1 && fields[0] == "0" {
			break // section terminator (§6)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("aspif: line %d: directive number: %w", lineNo, err)
		}
		ints := make([]int, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("aspif: line %d: field %d: %w", lineNo, i+1, err)
			}
			ints[i] = v
		}
		stmt, err := parseDirective(n, ints)
		if err != nil {
			return nil, fmt.Errorf("aspif: line %d: %w", lineNo, err)
		}
		p.Statements = append(p.Statements, stmt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("aspif: scan: %w", err)
	}
	return p, nil
}

func parseDirective(n int, f []int) (Statement, error) {
	switch n {
	case 1:
		return parseRule(f)
	case 2:
		return parseMinimise(f)
	case 3:
		return Project{Atoms: append([]int(nil), f...)}, nil
	case 4:
		return parseOutput(f)
	case 5:
		if len(f) != 2 {
			return nil, fmt.Errorf("external: want 2 fields, got %d", len(f))
		}
		return External{Atom: f[0], Value: f[1]}, nil
	case 6:
		return Assume{Literals: append([]int(nil), f...)}, nil
	case 7:
		return parseHeuristic(f)
	case 8:
		return parseEdge(f)
	case 9:
		return Theory{Fields: append([]int(nil), f...)}, nil
	default:
		return nil, fmt.Errorf("unknown directive %d", n)
	}
}

func parseRule(f []int) (Statement, error) {
	if len(f) < 1 {
		return nil, fmt.Errorf("rule: missing head type")
	}
	ht := HeadType(f[0])
	f = f[1:]
	if len(f) < 1 {
		return nil, fmt.Errorf("rule: missing head count")
	}
	nHead := f[0]
	f = f[1:]
	if len(f) < nHead {
		return nil, fmt.Errorf("rule: short head list")
	}
	head := append([]int(nil), f[:nHead]...)
	f = f[nHead:]
	if len(f) < 1 {
		return nil, fmt.Errorf("rule: missing body type")
	}
	bt := BodyType(f[0])
	f = f[1:]

	r := Rule{Head: head, HeadType: ht, BodyType: bt}
	switch bt {
	case BodyNormal:
		if len(f) < 1 {
			return nil, fmt.Errorf("rule: missing normal body count")
		}
		nBody := f[0]
		f = f[1:]
		if len(f) < nBody {
			return nil, fmt.Errorf("rule: short normal body")
		}
		for _, l := range f[:nBody] {
			r.Body = append(r.Body, WeightedLiteral{Literal: l, Weight: 1})
		}
	case BodyWeight:
		if len(f) < 2 {
			return nil, fmt.Errorf("rule: missing weight-body bound/count")
		}
		r.Bound = f[0]
		nBody := f[1]
		f = f[2:]
		if len(f) < nBody*2 {
			return nil, fmt.Errorf("rule: short weight body")
		}
		for i := 0; i < nBody; i++ {
			r.Body = append(r.Body, WeightedLiteral{Literal: f[2*i], Weight: f[2*i+1]})
		}
	default:
		return nil, fmt.Errorf("rule: unknown body type %d", bt)
	}
	return r, nil
}

func parseMinimise(f []int) (Statement, error) {
	if len(f) < 2 {
		return nil, fmt.Errorf("minimise: missing priority/count")
	}
	priority := f[0]
	n := f[1]
	f = f[2:]
	if len(f) < n*2 {
		return nil, fmt.Errorf("minimise: short literal list")
	}
	m := Minimise{Priority: priority}
	for i := 0; i < n; i++ {
		m.Literals = append(m.Literals, WeightedLiteral{Literal: f[2*i], Weight: f[2*i+1]})
	}
	return m, nil
}

func parseOutput(f []int) (Statement, error) {
	if len(f) < 1 {
		return nil, fmt.Errorf("output: missing name length")
	}
	nameLen := f[0]
	f = f[1:]
	if len(f) < nameLen {
		return nil, fmt.Errorf("output: name field truncated")
	}
	// aspif encodes a string as a run of character codes; here a name is
	// carried as nameLen decimal codepoints followed by the condition.
	var sb strings.Builder
	for _, c := range f[:nameLen] {
		sb.WriteRune(rune(c))
	}
	f = f[nameLen:]
	if len(f) < 1 {
		return nil, fmt.Errorf("output: missing condition count")
	}
	nCond := f[0]
	f = f[1:]
	if len(f) < nCond {
		return nil, fmt.Errorf("output: short condition")
	}
	return Output{Name: sb.String(), Condition: append([]int(nil), f[:nCond]...)}, nil
}

func parseHeuristic(f []int) (Statement, error) {
	if len(f) < 4 {
		return nil, fmt.Errorf("heuristic: want at least 4 fields")
	}
	h := Heuristic{Modifier: f[0], Atom: f[1], Value: f[2], Priority: f[3]}
	f = f[4:]
	if len(f) < 1 {
		return nil, fmt.Errorf("heuristic: missing condition count")
	}
	nCond := f[0]
	f = f[1:]
	if len(f) < nCond {
		return nil, fmt.Errorf("heuristic: short condition")
	}
	h.Condition = append([]int(nil), f[:nCond]...)
	return h, nil
}

func parseEdge(f []int) (Statement, error) {
	if len(f) < 2 {
		return nil, fmt.Errorf("edge: want at least 2 fields")
	}
	e := Edge{U: f[0], V: f[1]}
	f = f[2:]
	if len(f) < 1 {
		return nil, fmt.Errorf("edge: missing condition count")
	}
	nCond := f[0]
	f = f[1:]
	if len(f) < nCond {
		return nil, fmt.Errorf("edge: short condition")
	}
	e.Condition = append([]int(nil), f[:nCond]...)
	return e, nil
}

// Write serialises p back to the aspif text format, including the
// "asp 1 0 0" header and the trailing "0" terminator line §6 calls
// section termination. Round-tripping a Program through Write then
// Read reproduces the same Statements (§8's parser roundtrip property),
// modulo Output's Name only supporting the printable-ASCII range a
// decimal-codepoint run can carry.
func Write(w io.Writer, p *Program) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "asp 1 0 0"); err != nil {
		return err
	}
	for _, s := range p.Statements {
		if err := writeStatement(bw, s); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "0"); err != nil {
		return err
	}
	return bw.Flush()
}

func writeStatement(w *bufio.Writer, s Statement) error {
	var fields []int
	switch v := s.(type) {
	case Rule:
		fields = append(fields, 1, int(v.HeadType), len(v.Head))
		fields = append(fields, v.Head...)
		fields = append(fields, int(v.BodyType))
		switch v.BodyType {
		case BodyNormal:
			fields = append(fields, len(v.Body))
			for _, l := range v.Body {
				fields = append(fields, l.Literal)
			}
		case BodyWeight:
			fields = append(fields, v.Bound, len(v.Body))
			for _, l := range v.Body {
				fields = append(fields, l.Literal, l.Weight)
			}
		}
	case Minimise:
		fields = append(fields, 2, v.Priority, len(v.Literals))
		for _, l := range v.Literals {
			fields = append(fields, l.Literal, l.Weight)
		}
	case Project:
		fields = append(fields, 3)
		fields = append(fields, v.Atoms...)
	case Output:
		fields = append(fields, 4, len(v.Name))
		for _, c := range v.Name {
			fields = append(fields, int(c))
		}
		fields = append(fields, len(v.Condition))
		fields = append(fields, v.Condition...)
	case External:
		fields = append(fields, 5, v.Atom, v.Value)
	case Assume:
		fields = append(fields, 6)
		fields = append(fields, v.Literals...)
	case Heuristic:
		fields = append(fields, 7, v.Modifier, v.Atom, v.Value, v.Priority, len(v.Condition))
		fields = append(fields, v.Condition...)
	case Edge:
		fields = append(fields, 8, v.U, v.V, len(v.Condition))
		fields = append(fields, v.Condition...)
	case Theory:
		fields = append(fields, 9)
		fields = append(fields, v.Fields...)
	default:
		return fmt.Errorf("aspif: unknown statement type %T", s)
	}
	strs := make([]string, len(fields))
	for i, n := range fields {
		strs[i] = strconv.Itoa(n)
	}
	_, err := fmt.Fprintln(w, strings.Join(strs, " "))
	return err
}
