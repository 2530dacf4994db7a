// Command ednamatcher is the eDNA species identification tool of the
// marine research data platform: it builds a k-mer reference index from
// a sequence corpus and identifies species in query sequences, either
// one-shot on the command line, as a batch test run, or as a long
// running HTTP/MCP service.
package main

func main() {
	Execute()
}
