package tuning

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/knifehit/internal/engine"
)

//go:embed schema.cue
var schemaCUE string

// CompileError is a tuning file error with its CUE position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the tuning described by the schema defaults alone.
func Default() (engine.Tuning, error) {
	return LoadBytes("default.cue", nil)
}

// Load reads and compiles a tuning file.
func Load(path string) (engine.Tuning, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return engine.Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	return LoadBytes(path, src)
}

// LoadBytes compiles tuning source. filename is used for error positions.
func LoadBytes(filename string, src []byte) (engine.Tuning, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return engine.Tuning{}, fmt.Errorf("tuning schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Tuning"))

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return engine.Tuning{}, formatCUEError(err)
	}
	if err := checkFields(def, user, ""); err != nil {
		return engine.Tuning{}, err
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return engine.Tuning{}, formatCUEError(err)
	}

	var t engine.Tuning
	if err := v.Decode(&t); err != nil {
		return engine.Tuning{}, formatCUEError(err)
	}
	sort.Slice(t.CollisionTiers, func(i, j int) bool {
		return t.CollisionTiers[i].FromLevel < t.CollisionTiers[j].FromLevel
	})

	if err := t.Validate(); err != nil {
		return engine.Tuning{}, &CompileError{
			Field:   "tuning",
			Message: err.Error(),
			Pos:     user.Pos(),
		}
	}
	return t, nil
}

// checkFields rejects labels the schema does not define, descending into
// nested structs.
func checkFields(schema, user cue.Value, prefix string) error {
	if user.IncompleteKind() != cue.StructKind {
		return nil
	}
	iter, err := user.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		label := iter.Selector().String()
		field := prefix + label
		want := schema.LookupPath(cue.MakePath(iter.Selector()))
		if !want.Exists() {
			return &CompileError{
				Field:   field,
				Message: "unknown tuning field",
				Pos:     iter.Value().Pos(),
			}
		}
		if err := checkFields(want, iter.Value(), field+"."); err != nil {
			return err
		}
	}
	return nil
}

// formatCUEError converts a CUE error to a CompileError with position info.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "cue"
	if path := first.Path(); len(path) > 0 {
		field = path[0]
		for _, p := range path[1:] {
			field += "." + p
		}
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   field,
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return &CompileError{Field: field, Message: first.Error()}
}
