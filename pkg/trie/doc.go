// ## Overview
// Package trie implements a generic prefix tree (trie) over sequences of tokens.
// A Tokenizer turns a value into its tokens: segments of a delimited string,
// the runes of a string, or the elements of any slice of comparable values.
// The trie supports adding and removing values, exact lookup and prefix tests.
// Removing a value prunes the nodes it leaves unused, without touching nodes that
// still lead to, or hold, other values.
//
// ## Example usage:
//
//	paths := trie.NewText([]string{"/usr/bin", "/usr/lib"}, trie.WithDelimiter("/"))
//	paths.Add("/etc/hosts").Remove("/usr/lib")
//
//	fmt.Println(paths.Lookup("usr/bin"))   // Output: true
//	fmt.Println(paths.IsPrefix("/usr"))    // Output: true
//	fmt.Println(paths.IsPrefix("/etc/hosts")) // Output: false
//
//	ports := trie.NewSequence([][]int{{80, 443}, {80, 8080}})
//	fmt.Println(ports.Lookup([]int{80, 443})) // Output: true
//
// Nodes are stored in an arena and addressed by index, so pruning only deletes
// a map entry and puts the slot back on a free list.
package trie
