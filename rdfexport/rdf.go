// Package rdfexport converts the facts held by a dataq.Frontend into an RDF
// dataset, for interop with semantic-web tooling. Like persist, it is a pure
// snapshot collaborator: nothing in the core evaluator imports it, and
// nothing here is consulted while a dataq.SolutionStream is live.
package rdfexport

import (
	"fmt"
	"io"

	"github.com/piprate/json-gold/ld"

	"github.com/arbimo/dataq"
)

// RDF and XSD namespace constants.
const (
	rdfType      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfStatement = "http://www.w3.org/1999/02/22-rdf-syntax-ns#Statement"
	rdfSubject   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#subject"
	rdfPredicate = "http://www.w3.org/1999/02/22-rdf-syntax-ns#predicate"
	rdfObject    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#object"
	xsdString    = "http://www.w3.org/2001/XMLSchema#string"
)

// Namespace prefixes every predicate name and argument IRI, since dataq
// symbols are bare strings with no namespace of their own: every dataq
// argument here becomes an IRI, not a typed literal, because the frontend
// does not distinguish a name from a number.
const Namespace = "https://dataq.example/"

// ToRDF converts every fact f holds into an RDF dataset, using an
// arity-based mapping:
//   - 0 args (bare predicate, the original fact's arity 1): blank node rdf:type predicate
//   - 1 arg: arg0 rdf:type predicate, with arg0 as subject and predicate as the type
//   - 2 args: arg0 predicate arg1 (a direct triple)
//   - 3+ args: reification, with arg2 onward attached as extra properties
//
// dataq.ExportedFact.Args holds the fact's arguments with the predicate
// already split out, so the cases below are keyed on len(Args) directly
// rather than on the original fact's arity.
func ToRDF(f *dataq.Frontend) (*ld.RDFDataset, error) {
	dataset := ld.NewRDFDataset()
	issuer := ld.NewIdentifierIssuer("_:b")

	for _, fact := range f.ExportFacts() {
		quads, err := factToQuads(fact, issuer)
		if err != nil {
			return nil, fmt.Errorf("rdfexport: convert %q: %w", fact.Predicate, err)
		}
		dataset.Graphs["@default"] = append(dataset.Graphs["@default"], quads...)
	}
	return dataset, nil
}

func factToQuads(fact dataq.ExportedFact, issuer *ld.IdentifierIssuer) ([]*ld.Quad, error) {
	predicateIRI := Namespace + fact.Predicate

	switch len(fact.Args) {
	case 0:
		blank := ld.NewBlankNode(issuer.GetId(""))
		return []*ld.Quad{ld.NewQuad(blank, ld.NewIRI(rdfType), ld.NewIRI(predicateIRI), "@default")}, nil

	case 1:
		subject := argNode(fact.Args[0])
		return []*ld.Quad{ld.NewQuad(subject, ld.NewIRI(rdfType), ld.NewIRI(predicateIRI), "@default")}, nil

	case 2:
		subject := argNode(fact.Args[0])
		object := argNode(fact.Args[1])
		return []*ld.Quad{ld.NewQuad(subject, ld.NewIRI(predicateIRI), object, "@default")}, nil

	default:
		return reifyFact(fact, predicateIRI, issuer), nil
	}
}

// reifyFact builds the standard RDF reification quads for a fact with 3 or
// more arguments.
func reifyFact(fact dataq.ExportedFact, predicateIRI string, issuer *ld.IdentifierIssuer) []*ld.Quad {
	stmt := ld.NewBlankNode(issuer.GetId("stmt"))
	quads := []*ld.Quad{
		ld.NewQuad(stmt, ld.NewIRI(rdfType), ld.NewIRI(rdfStatement), "@default"),
		ld.NewQuad(stmt, ld.NewIRI(rdfSubject), argNode(fact.Args[0]), "@default"),
		ld.NewQuad(stmt, ld.NewIRI(rdfPredicate), ld.NewIRI(predicateIRI), "@default"),
		ld.NewQuad(stmt, ld.NewIRI(rdfObject), argNode(fact.Args[1]), "@default"),
	}
	for i := 2; i < len(fact.Args); i++ {
		argPredicate := fmt.Sprintf("%sarg%d", Namespace, i)
		quads = append(quads, ld.NewQuad(stmt, ld.NewIRI(argPredicate), argNode(fact.Args[i]), "@default"))
	}
	return quads
}

// argNode turns a dataq argument string into an RDF node. Every argument is
// namespaced as an IRI: dataq has no notion of a typed literal, so there is
// no signal to distinguish "alice" the identifier from "42" the number.
func argNode(arg string) ld.Node {
	return ld.NewIRI(Namespace + arg)
}

// WriteQuads serializes every fact f holds to w in N-Quads text, one line
// per quad, via json-gold's NQuadRDFSerializer.
func WriteQuads(f *dataq.Frontend, w io.Writer) error {
	dataset, err := ToRDF(f)
	if err != nil {
		return err
	}

	serializer := ld.NQuadRDFSerializer{}
	serialized, err := serializer.Serialize(dataset)
	if err != nil {
		return fmt.Errorf("rdfexport: serialize n-quads: %w", err)
	}

	nquads, ok := serialized.(string)
	if !ok {
		return fmt.Errorf("rdfexport: unexpected n-quads serialization type %T", serialized)
	}
	if _, err := io.WriteString(w, nquads); err != nil {
		return fmt.Errorf("rdfexport: write n-quads: %w", err)
	}
	return nil
}
