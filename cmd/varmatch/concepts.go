package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"varmatch/internal/match"
	"varmatch/internal/vocab"
)

func conceptsCommand() *cli.Command {
	return &cli.Command{
		Name:      "concepts",
		Usage:     "Print the active concept vocabulary as YAML",
		ArgsUsage: "[NAME...]",
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			v, err := selectConcepts(e.vocab, c.Args().Slice())
			if err != nil {
				return err
			}

			data, err := vocab.Marshal(v)
			if err != nil {
				return err
			}
			_, err = c.App.Writer.Write(data)
			return err
		},
	}
}

// selectConcepts narrows the vocabulary to the named concepts, in argument
// order. Names are compared in normalized form; no names keeps everything.
func selectConcepts(v *vocab.Vocabulary, names []string) (*vocab.Vocabulary, error) {
	if len(names) == 0 {
		return v, nil
	}

	concepts := make([]match.Concept, 0, len(names))
	for _, name := range names {
		concept, ok := v.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown concept %q", name)
		}
		concepts = append(concepts, concept)
	}

	return vocab.New(concepts), nil
}
