// Package extract finds brands with recent marketing activity in a corpus
// of web text.
//
// A CorpusProvider gathers the text, a language model is asked for a JSON
// list of {name, issue, description}, and the answer is parsed leniently.
// The extractor then rejects non-brand names, replaces dates the corpus does
// not contain with "날짜 미상", drops duplicate names and caps the list.
package extract
