package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/store"
)

// findSet resolves a user-supplied reference to one stored set: an
// exact id, a unique id prefix, or an exact name.
func findSet(ctx context.Context, repo store.SetRepo, ref string) (*quiz.Set, error) {
	sets, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*quiz.Set
	for _, s := range sets {
		if s.ID == ref {
			return s, nil
		}
		if strings.HasPrefix(s.ID, ref) || s.Name == ref {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no set matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		var ids []string
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return nil, fmt.Errorf("%q is ambiguous, matches: %s", ref, strings.Join(ids, ", "))
	}
}
