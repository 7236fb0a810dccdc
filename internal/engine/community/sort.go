package community

import "sort"

func sortBySize(cs []Community) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Size() != cs[j].Size() {
			return cs[i].Size() > cs[j].Size()
		}
		return cs[i].ID < cs[j].ID
	})
}
