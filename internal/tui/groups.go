package tui

import "github.com/cocacoran-1/kanji/internal/domain/kanji"

// UnleveledLabel is shown for the group of records without a level.
const UnleveledLabel = "Unleveled"

// Group is one level's records, as indexes into the loaded list.
type Group struct {
	Level   string
	Indexes []int
}

func (g Group) Label() string {
	if g.Level == "" {
		return UnleveledLabel
	}
	return g.Level
}

// GroupByLevel partitions records by level. Groups appear in the order their
// level is first seen; records keep list order within a group.
func GroupByLevel(records []kanji.Kanji) []Group {
	groups := []Group{}
	pos := map[string]int{}
	for i := range records {
		level := records[i].LevelLabel()
		gi, ok := pos[level]
		if !ok {
			gi = len(groups)
			pos[level] = gi
			groups = append(groups, Group{Level: level})
		}
		groups[gi].Indexes = append(groups[gi].Indexes, i)
	}
	return groups
}

// groupOf returns the position of the group holding record index idx and the
// record's offset inside it, or -1, -1.
func groupOf(groups []Group, idx int) (int, int) {
	for gi, g := range groups {
		for off, ri := range g.Indexes {
			if ri == idx {
				return gi, off
			}
		}
	}
	return -1, -1
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
