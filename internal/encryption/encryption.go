// Package encryption turns timeline entries into word-by-word encrypted
// events and reveals them one word at a time.
//
// Every word is shown as the binary code of its characters until it is
// revealed. Events are values: every operation returns a new Event and
// leaves its input untouched.
package encryption

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/vovakirdan/papuso/internal/timeline"
)

// Line labels, in display order.
const (
	LabelTitle       = "Título"
	LabelYear        = "Año"
	LabelDescription = "Descripción"
)

// Token is a single word and its encrypted form.
type Token struct {
	Original  string
	Encrypted string
	Revealed  bool
}

// Display returns the word if revealed, otherwise its encrypted form.
func (t Token) Display() string {
	if t.Revealed {
		return t.Original
	}
	return t.Encrypted
}

// Line is a labelled field of an event.
type Line struct {
	Label       string
	LabelTokens []Token
	Tokens      []Token
}

// Display renders "Label: tok tok tok".
func (l Line) Display() string {
	words := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		words[i] = t.Display()
	}
	return l.Label + ": " + strings.Join(words, " ")
}

func (l Line) clone() Line {
	return Line{
		Label:       l.Label,
		LabelTokens: append([]Token(nil), l.LabelTokens...),
		Tokens:      append([]Token(nil), l.Tokens...),
	}
}

// Event is an encrypted timeline entry.
//
// TotalWords counts label tokens as well as value tokens, so a three-line
// event needs its labels revealed too before it is complete.
type Event struct {
	ID            string
	Lines         []Line
	TotalWords    int
	RevealedWords int
	Decryptable   bool
}

// Progress returns revealed and total word counts.
func (e Event) Progress() (revealed, total int) {
	return e.RevealedWords, e.TotalWords
}

// Remaining is the number of words still encrypted.
func (e Event) Remaining() int {
	return e.TotalWords - e.RevealedWords
}

// Clone returns a deep copy.
func (e Event) Clone() Event {
	out := e
	out.Lines = make([]Line, len(e.Lines))
	for i, l := range e.Lines {
		out.Lines[i] = l.clone()
	}
	return out
}

// MarkUndecryptable returns a copy that can no longer be revealed.
func (e Event) MarkUndecryptable() Event {
	out := e.Clone()
	out.Decryptable = false
	return out
}

// EncodeWord returns the space-separated binary codes of the word's UTF-16
// code units, each padded to at least 8 digits.
func EncodeWord(word string) string {
	units := utf16.Encode([]rune(word))
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%08b", u)
	}
	return strings.Join(parts, " ")
}

// DecodeWord reverses EncodeWord. Groups that are not binary are skipped.
func DecodeWord(encrypted string) string {
	fields := strings.Fields(encrypted)
	units := make([]uint16, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 2, 16)
		if err != nil {
			continue
		}
		units = append(units, uint16(v))
	}
	return string(utf16.Decode(units))
}

// Tokenize splits text on whitespace into unrevealed tokens.
func Tokenize(text string) []Token {
	words := strings.Fields(text)
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Original: w, Encrypted: EncodeWord(w)}
	}
	return tokens
}

func newLine(label, text string) Line {
	return Line{Label: label, LabelTokens: Tokenize(label), Tokens: Tokenize(text)}
}

// Build encrypts the entry at position index (zero based).
func Build(entry timeline.Entry, index int) Event {
	lines := []Line{
		newLine(LabelTitle, entry.Title),
		newLine(LabelYear, entry.Year),
		newLine(LabelDescription, entry.Description),
	}
	total := 0
	for _, l := range lines {
		total += len(l.LabelTokens) + len(l.Tokens)
	}
	return Event{
		ID:          fmt.Sprintf("evento-%d", index+1),
		Lines:       lines,
		TotalWords:  total,
		Decryptable: true,
	}
}

// BuildAll encrypts every entry in order.
func BuildAll(entries []timeline.Entry) []Event {
	events := make([]Event, len(entries))
	for i, e := range entries {
		events[i] = Build(e, i)
	}
	return events
}

// RevealNextWord reveals the first hidden token, walking lines in order and
// each line's label tokens before its value tokens. It returns the event
// unchanged when it is not decryptable or nothing is left to reveal.
func RevealNextWord(e Event) Event {
	if !e.Decryptable {
		return e
	}
	for i, l := range e.Lines {
		if j := firstHidden(l.LabelTokens); j >= 0 {
			out := e.Clone()
			out.Lines[i].LabelTokens[j].Revealed = true
			return countReveal(out)
		}
		if j := firstHidden(l.Tokens); j >= 0 {
			out := e.Clone()
			out.Lines[i].Tokens[j].Revealed = true
			return countReveal(out)
		}
	}
	return e
}

func firstHidden(tokens []Token) int {
	for i, t := range tokens {
		if !t.Revealed {
			return i
		}
	}
	return -1
}

func countReveal(e Event) Event {
	e.RevealedWords = min(e.RevealedWords+1, e.TotalWords)
	return e
}

// IsComplete reports whether every word has been revealed.
func IsComplete(e Event) bool {
	return e.RevealedWords >= e.TotalWords
}
