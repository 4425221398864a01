package manifest

// DefaultRoot — корень встроенного каркаса.
const DefaultRoot = "algorithm_visualizer"

// pair раскрывает base в "base.cpp", "base.h".
func pair(bases ...string) []string {
	out := make([]string, 0, 2*len(bases))
	for _, b := range bases {
		out = append(out, b+".cpp", b+".h")
	}
	return out
}

func builtinEntries() []Entry {
	return []Entry{
		{Dir: "", Files: []string{"main.cpp", "CMakeLists.txt"}},
		{Dir: "common", Files: []string{
			"node_tree.h", "node_list.h", "node_graph.h", "edge.h", "utilities.h",
		}},
		{Dir: "data_structures/trees", Files: pair(
			"binary_search_tree", "binary_tree", "avl_tree",
			"red_black_tree", "segment_tree", "fenwick_tree",
		)},
		{Dir: "data_structures/lists", Files: pair("linked_list", "skip_list")},
		{Dir: "data_structures/queues_stacks", Files: pair("stack", "queue", "deque")},
		{Dir: "data_structures/maps_sets", Files: pair("hash_table", "disjoint_set", "trie")},
		{Dir: "data_structures/graphs", Files: pair("graph")},
		{Dir: "algorithms/sorting", Files: []string{
			"bubble_sort.cpp", "selection_sort.cpp", "insertion_sort.cpp",
			"merge_sort.cpp", "quick_sort.cpp", "heap_sort.cpp", "radix_sort.cpp",
		}},
		{Dir: "algorithms/searching", Files: []string{
			"binary_search.cpp", "linear_search.cpp", "ternary_search.cpp",
		}},
		{Dir: "algorithms/graph", Files: []string{
			"dfs.cpp", "bfs.cpp", "dijkstra.cpp", "bellman_ford.cpp",
			"floyd_warshall.cpp", "kruskal.cpp", "prim.cpp",
		}},
		{Dir: "algorithms/dynamic_programming", Files: []string{
			"knapsack.cpp", "lcs.cpp", "lis.cpp", "matrix_chain.cpp", "rod_cutting.cpp",
		}},
		{Dir: "algorithms/number_theory", Files: []string{
			"gcd.cpp", "lcm.cpp", "modular_exponentiation.cpp", "sieve.cpp", "extended_euclidean.cpp",
		}},
		{Dir: "algorithms/greedy", Files: []string{
			"activity_selection.cpp", "fractional_knapsack.cpp", "huffman_encoding.cpp",
		}},
		{Dir: "algorithms/miscellaneous", Files: []string{
			"backtracking.cpp", "recursion.cpp", "divide_and_conquer.cpp",
			"sliding_window.cpp", "two_pointers.cpp",
		}},
		{Dir: "algorithms/tree_traversals", Files: []string{
			"in_order.cpp", "pre_order.cpp", "post_order.cpp",
		}},
		{Dir: "visualizer", Files: pair("renderer", "sfml_handler", "node_drawer", "animations", "ui")},
		{Dir: "assets"},
		{Dir: "tests", Files: []string{"test_visualizer.cpp"}},
	}
}

// AlgorithmVisualizer — встроенный манифест каркаса визуализатора алгоритмов.
// Каждый вызов собирает новый экземпляр.
func AlgorithmVisualizer() Manifest {
	m, err := New(DefaultRoot, builtinEntries()...)
	if err != nil {
		// встроенные данные статичны и покрыты тестами
		panic("manifest: встроенный манифест некорректен: " + err.Error())
	}
	return m
}
