package ecs

// intersect returns entity ids present in every store, iterating the
// smallest one. The result is a copy so callbacks may add or remove
// components while iterating.
func intersect(stores ...store) []entityID {
	if len(stores) == 0 {
		return nil
	}
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}
	out := make([]entityID, 0, smallest.len())
outer:
	for _, id := range smallest.ids() {
		for _, s := range stores {
			if !s.has(id) {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}

func snapshot(ids []entityID) []entityID {
	return append([]entityID(nil), ids...)
}
