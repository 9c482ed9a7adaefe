package configs

import (
	"errors"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var ErrValueNotFound = errors.New("value not found")

// Source is one config document. Content is read from Name when nil.
type Source struct {
	Name    string
	Content []byte
}

func Files(paths ...string) []Source {
	ret := make([]Source, 0, len(paths))
	for _, path := range paths {
		ret = append(ret, Source{
			Name: path,
		})
	}
	return ret
}

// Loader queries a list of config documents, earlier documents take precedence.
type Loader struct {
	sources  []Source
	getRoots func() ([]cue.Value, error)
}

func NewLoader(sources []Source, schemaSrc string) Loader {
	return Loader{
		sources: sources,

		getRoots: sync.OnceValues(func() (ret []cue.Value, err error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			for _, source := range sources {
				content := source.Content
				if content == nil {
					content, err = os.ReadFile(source.Name)
					if err != nil {
						return nil, err
					}
				}

				value := ctx.CompileBytes(
					content,
					cue.Filename(source.Name),
				)
				if err = value.Err(); err != nil {
					return nil, err
				}

				if schema.Exists() {
					value = schema.Unify(value)
					if err := value.Validate(); err != nil {
						return nil, err
					}
				}

				ret = append(ret, value)
			}

			return
		}),
	}
}

func (l Loader) Names() []string {
	ret := make([]string, 0, len(l.sources))
	for _, source := range l.sources {
		ret = append(ret, source.Name)
	}
	return ret
}

// Err reports the first error hit while loading or validating the documents.
func (l Loader) Err() error {
	_, err := l.roots()
	return err
}

func (l Loader) roots() ([]cue.Value, error) {
	if l.getRoots == nil {
		return nil, nil
	}
	return l.getRoots()
}

func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.roots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, root := range roots {
			value := root.LookupPath(cuePath)
			if !value.Exists() || value.Err() != nil || !value.IsConcrete() {
				continue
			}
			if !yield(&value, nil) {
				return
			}
		}
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}
