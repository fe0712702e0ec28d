package persist

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/arbimo/dataq"
)

// SnapshotJSON streams every fact held by f to w as a JSON array of
// {"pred": "...", "args": [...]} objects, one per fact, in the same
// per-arity-bucket order dataq.Frontend.ExportFacts returns. It streams
// token-by-token rather than building an intermediate []any.
func SnapshotJSON(f *dataq.Frontend, w io.Writer) error {
	enc := jsontext.NewEncoder(w)

	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return fmt.Errorf("persist: write array start: %w", err)
	}
	for _, fact := range f.ExportFacts() {
		if err := writeFactObject(enc, fact); err != nil {
			return err
		}
	}
	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return fmt.Errorf("persist: write array end: %w", err)
	}
	return nil
}

func writeFactObject(enc *jsontext.Encoder, fact dataq.ExportedFact) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("persist: write object start: %w", err)
	}
	if err := enc.WriteToken(jsontext.String("pred")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(fact.Predicate)); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("args")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	for _, arg := range fact.Args {
		if err := enc.WriteToken(jsontext.String(arg)); err != nil {
			return err
		}
	}
	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// LoadJSON reads a stream produced by SnapshotJSON and adds every fact to
// f via AddFact, preserving the array's order.
func LoadJSON(f *dataq.Frontend, r io.Reader) error {
	dec := jsontext.NewDecoder(r)

	tok, err := dec.ReadToken()
	if err != nil {
		return fmt.Errorf("persist: read array start: %w", err)
	}
	if tok.Kind() != '[' {
		return fmt.Errorf("persist: expected JSON array start, got %c", tok.Kind())
	}

	for dec.PeekKind() != ']' {
		fact, err := readFactObject(dec)
		if err != nil {
			return err
		}
		if err := f.AddFact(fact); err != nil {
			return fmt.Errorf("persist: add fact %v: %w", fact, err)
		}
	}

	if tok, err = dec.ReadToken(); err != nil {
		return fmt.Errorf("persist: read array end: %w", err)
	} else if tok.Kind() != ']' {
		return fmt.Errorf("persist: expected JSON array end, got %c", tok.Kind())
	}
	return nil
}

func readFactObject(dec *jsontext.Decoder) ([]string, error) {
	if tok, err := dec.ReadToken(); err != nil {
		return nil, fmt.Errorf("persist: read object start: %w", err)
	} else if tok.Kind() != '{' {
		return nil, fmt.Errorf("persist: expected object start, got %c", tok.Kind())
	}

	var pred string
	var args []string
	for dec.PeekKind() != '}' {
		keyTok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("persist: read key: %w", err)
		}
		switch keyTok.String() {
		case "pred":
			valTok, err := dec.ReadToken()
			if err != nil {
				return nil, fmt.Errorf("persist: read pred: %w", err)
			}
			pred = valTok.String()
		case "args":
			if tok, err := dec.ReadToken(); err != nil {
				return nil, fmt.Errorf("persist: read args start: %w", err)
			} else if tok.Kind() != '[' {
				return nil, fmt.Errorf("persist: expected args array, got %c", tok.Kind())
			}
			for dec.PeekKind() != ']' {
				valTok, err := dec.ReadToken()
				if err != nil {
					return nil, fmt.Errorf("persist: read arg: %w", err)
				}
				args = append(args, valTok.String())
			}
			if _, err := dec.ReadToken(); err != nil {
				return nil, fmt.Errorf("persist: read args end: %w", err)
			}
		default:
			return nil, fmt.Errorf("persist: unexpected key %q in fact object", keyTok.String())
		}
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, fmt.Errorf("persist: read object end: %w", err)
	}

	fact := make([]string, 0, len(args)+1)
	fact = append(fact, pred)
	fact = append(fact, args...)
	return fact, nil
}
