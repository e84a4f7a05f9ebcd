package placeholder

import "strings"

// Kind discriminates token variants.
type Kind int

const (
	// KindText is a literal run copied verbatim into the output.
	KindText Kind = iota

	// KindPlaceholder is a name to resolve against replacements.
	KindPlaceholder
)

// Token is one segment of template text: either literal text or a
// placeholder name. Value is a substring of the original input, so
// tokens share its backing array instead of copying.
type Token struct {
	Kind  Kind
	Value string
}

type state int

const (
	stateText state = iota
	statePlaceholder
)

// Tokenizer splits template text into Text and Placeholder tokens
// using the configured delimiters. It is a one-shot iterator: each
// Next call consumes input, and once the remaining input is empty
// the sequence is exhausted permanently.
type Tokenizer struct {
	text  string
	state state
	start string
	end   string
}

// NewTokenizer returns a tokenizer over text with the given start
// and end delimiters. Both delimiters must be non-empty.
func NewTokenizer(text, start, end string) *Tokenizer {
	return &Tokenizer{
		text:  text,
		start: start,
		end:   end,
		state: stateText,
	}
}

// Next returns the next token. The second result is false once the
// input is exhausted.
func (tk *Tokenizer) Next() (Token, bool) {
	if tk.text == "" {
		return Token{}, false
	}

	if tk.state == statePlaceholder {
		return tk.scanPlaceholder(), true
	}

	return tk.scanText(), true
}

// scanText emits literal text up to the next start delimiter, or the
// whole remaining input if none occurs.
func (tk *Tokenizer) scanText() Token {
	if i := strings.Index(tk.text, tk.start); i >= 0 {
		token := Token{Kind: KindText, Value: tk.text[:i]}

		tk.text = tk.text[i:]
		tk.state = statePlaceholder

		return token
	}

	token := Token{Kind: KindText, Value: tk.text}
	tk.text = ""

	return token
}

// scanPlaceholder emits the name between the delimiters. Contiguous
// runs of the space character are stripped from both ends of the
// name; other whitespace is part of the name. A missing end delimiter
// degrades the rest of the input to a single literal text token.
func (tk *Tokenizer) scanPlaceholder() Token {
	tk.state = stateText

	if j := strings.Index(tk.text, tk.end); j >= 0 {
		name := strings.Trim(tk.text[len(tk.start):j], " ")
		tk.text = tk.text[j+len(tk.end):]

		return Token{Kind: KindPlaceholder, Value: name}
	}

	token := Token{Kind: KindText, Value: tk.text}
	tk.text = ""

	return token
}
