package questionbank

import "github.com/abhisek/learnbot/internal/curriculum"

// DefaultCatalog returns the built-in reference catalog. Only data
// structures is populated; it has items at every difficulty.
func DefaultCatalog() Catalog {
	return Catalog{
		curriculum.DataStructures: {
			curriculum.Easy: {
				{
					Question: "What is an array?",
					Options: []string{
						"A collection of elements of the same data type",
						"A linked list of nodes",
						"A binary tree structure",
						"A hash table implementation",
					},
					Answer: 0,
				},
				{
					Question: "What is a stack?",
					Options: []string{
						"FIFO data structure",
						"LIFO data structure",
						"Random access structure",
						"Binary tree structure",
					},
					Answer: 1,
				},
			},
			curriculum.Medium: {
				{
					Question: "What is the time complexity of binary search?",
					Options:  []string{"O(n)", "O(log n)", "O(n^2)", "O(1)"},
					Answer:   1,
				},
			},
			curriculum.Hard: {
				{
					Question: "Which balancing technique is used in AVL trees?",
					Options: []string{
						"Red-Black coloring",
						"Height balancing",
						"Weight balancing",
						"B-tree balancing",
					},
					Answer: 1,
				},
			},
		},
	}
}

// Default returns a Bank over DefaultCatalog.
func Default() *Bank {
	b, err := New(DefaultCatalog())
	if err != nil {
		panic("reference catalog is invalid: " + err.Error())
	}
	return b
}
