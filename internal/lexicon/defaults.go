package lexicon

// Default returns the built-in lexicon for algorithm and data-structure catalogs.
// Each call returns a fresh copy that callers may extend.
func Default() *Lexicon {
	l := New()

	for abbr, expansions := range defaultAbbreviations {
		l.AddAbbreviation(abbr, expansions...)
	}
	for _, group := range defaultSynonyms {
		l.AddSynonyms(group...)
	}
	for term, related := range defaultJargon {
		l.AddJargon(term, related...)
	}
	for _, pair := range defaultConcepts {
		l.AddConcept(pair[0], pair[1])
	}

	return l
}

var defaultAbbreviations = map[string][]string{
	"dfs":  {"depth first search", "depth-first search"},
	"bfs":  {"breadth first search", "breadth-first search"},
	"bst":  {"binary search tree"},
	"dp":   {"dynamic programming"},
	"ll":   {"linked list"},
	"dll":  {"doubly linked list"},
	"lru":  {"least recently used"},
	"lcs":  {"longest common subsequence"},
	"lis":  {"longest increasing subsequence"},
	"mst":  {"minimum spanning tree"},
	"dag":  {"directed acyclic graph"},
	"avl":  {"avl tree", "self-balancing binary search tree"},
	"gcd":  {"greatest common divisor"},
	"lcm":  {"least common multiple"},
	"kmp":  {"knuth morris pratt", "knuth-morris-pratt"},
	"fft":  {"fast fourier transform"},
	"rb":   {"red black tree", "red-black tree"},
	"uf":   {"union find", "disjoint set"},
	"dsu":  {"disjoint set union", "union find"},
	"sp":   {"shortest path"},
	"tsp":  {"traveling salesman problem", "travelling salesman"},
	"pq":   {"priority queue"},
	"ds":   {"data structure"},
	"algo": {"algorithm"},
}

var defaultSynonyms = [][]string{
	{"fast", "quick", "rapid", "efficient"},
	{"find", "search", "lookup", "locate"},
	{"sort", "order", "arrange"},
	{"small", "min", "minimum", "least"},
	{"large", "max", "maximum", "greatest"},
	{"path", "route"},
	{"graph", "network"},
	{"array", "list", "vector"},
	{"map", "dictionary", "hash table"},
	{"join", "merge", "combine"},
	{"split", "partition", "divide"},
	{"stack", "lifo"},
	{"queue", "fifo"},
}

var defaultJargon = map[string][]string{
	"fast":     {"quick", "merge", "heap", "radix", "hash"},
	"sorting":  {"sort", "quick", "merge", "heap", "bubble", "insertion"},
	"graph":    {"vertex", "edge", "dijkstra", "traversal", "search"},
	"tree":     {"node", "binary", "heap", "trie", "balanced"},
	"shortest": {"dijkstra", "bellman", "floyd", "path"},
	"string":   {"substring", "pattern", "knuth", "rabin", "trie"},
	"cache":    {"lru", "least recently used", "eviction"},
	"optimize": {"dynamic programming", "greedy", "memoization"},
	"divide":   {"merge", "quick", "binary"},
	"lookup":   {"hash", "search", "map"},
}

var defaultConcepts = [][2]string{
	{"sort", "order"},
	{"tree", "node"},
	{"graph", "edge"},
	{"graph", "vertex"},
	{"search", "find"},
	{"heap", "priority"},
	{"hash", "key"},
	{"stack", "push"},
	{"queue", "enqueue"},
	{"path", "distance"},
	{"list", "pointer"},
	{"matrix", "grid"},
}
