package commands

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/gingerrexayers/fdf-go/internal/fdf/lib"
)

// RenderGroups draws every digest that has duplicates as a branch: the
// original on the branch line, its duplicates as leaves. It returns an empty
// string when nothing was duplicated.
func RenderGroups(index *lib.ContentIndex) string {
	tree := gotree.New("duplicate groups")
	groups := 0

	index.Walk(func(original lib.Entry) bool {
		duplicates := index.Duplicates(original.ID)
		if len(duplicates) == 0 {
			return true
		}
		digest := original.Digest.String()
		if len(digest) > 12 {
			digest = digest[:12]
		}
		branch := tree.Add(fmt.Sprintf("%s [%s] +%d", original.Path, digest, len(duplicates)))
		for _, path := range duplicates {
			branch.Add(path)
		}
		groups++
		return true
	})

	if groups == 0 {
		return ""
	}
	return tree.Print()
}
