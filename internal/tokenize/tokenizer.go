package tokenize

import (
	"fmt"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/launchpath/cmdkit/internal/platform"
)

const (
	quoteAwareTokenizationErrorTemplateConstant = "unable to tokenize command string %q: %w"
	argumentJoinSeparatorConstant               = " "
)

// Tokenizer converts a raw command string into an ordered argument vector.
type Tokenizer interface {
	// Tokenize splits the raw command string into discrete argument strings.
	Tokenize(rawCommand string) ([]string, error)
}

// QuoteAwareTokenizer splits command strings using POSIX shell quoting rules so
// quoted substrings containing whitespace remain a single token.
type QuoteAwareTokenizer struct {
	parser *shellwords.Parser
}

// NewQuoteAwareTokenizer constructs a tokenizer honoring single quotes, double quotes, and escapes.
func NewQuoteAwareTokenizer() *QuoteAwareTokenizer {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	return &QuoteAwareTokenizer{parser: parser}
}

// Tokenize implements Tokenizer using shell quoting rules.
func (tokenizer *QuoteAwareTokenizer) Tokenize(rawCommand string) ([]string, error) {
	argumentVector, parseError := tokenizer.parser.Parse(rawCommand)
	if parseError != nil {
		return nil, fmt.Errorf(quoteAwareTokenizationErrorTemplateConstant, rawCommand, parseError)
	}
	return argumentVector, nil
}

// WhitespaceTokenizer splits command strings on whitespace only. Quoting is not
// interpreted; this is a documented precision loss on platforms lacking a
// native quote-aware splitter, not behavior to silently correct.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer constructs the whitespace-only tokenizer.
func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

// Tokenize implements Tokenizer by splitting on runs of whitespace.
func (tokenizer *WhitespaceTokenizer) Tokenize(rawCommand string) ([]string, error) {
	return strings.Fields(rawCommand), nil
}

// ForCapabilities selects the tokenizer strategy appropriate for the supplied platform.
func ForCapabilities(platformCapabilities platform.Capabilities) Tokenizer {
	if platformCapabilities.SupportsQuoteAwareTokenization {
		return NewQuoteAwareTokenizer()
	}
	return NewWhitespaceTokenizer()
}

// JoinArguments renders an argument list as the single string handed to a
// shell-mode invocation. No quoting is applied; shell-mode callers own
// injection safety.
func JoinArguments(argumentList []string) string {
	return strings.Join(argumentList, argumentJoinSeparatorConstant)
}
