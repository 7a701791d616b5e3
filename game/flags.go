package game

// parseFlags reads leading "-x value" pairs from tokens[1:]. Only flags in
// allowed are recognized, each at most once. It returns the flag values and
// the index of the first token after them, and fails if a flag lacks its
// value or no token follows the flags.
func parseFlags(tokens []string, allowed ...string) (map[string]string, int, bool) {
	flags := map[string]string{}
	idx := 1
	for idx < len(tokens) {
		flag := tokens[idx]
		known := false
		for _, candidate := range allowed {
			if flag == candidate {
				known = true
				break
			}
		}
		if !known {
			break
		}
		if _, seen := flags[flag]; seen {
			return nil, 0, false
		}
		if idx+1 >= len(tokens) {
			return nil, 0, false
		}
		flags[flag] = tokens[idx+1]
		idx += 2
	}
	if idx >= len(tokens) {
		return nil, 0, false
	}
	return flags, idx, true
}
