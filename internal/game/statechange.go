package game

import "sort"

// DetectStateChanges は訪問済み地域リストの差分を検出する。
// previousに無くnextにあるものがadded、その逆がremoved。
// 入力の順序は問わず、重複は無視する。結果はソート済み。
func DetectStateChanges(previous, next []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(previous))
	for _, code := range previous {
		prevSet[code] = struct{}{}
	}
	nextSet := make(map[string]struct{}, len(next))
	for _, code := range next {
		nextSet[code] = struct{}{}
	}

	for code := range nextSet {
		if _, ok := prevSet[code]; !ok {
			added = append(added, code)
		}
	}
	for code := range prevSet {
		if _, ok := nextSet[code]; !ok {
			removed = append(removed, code)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
