package execproc

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

const (
	utf8CanonicalEncodingNameConstant      = "utf-8"
	utf8AlternateEncodingNameConstant      = "utf8"
	unicodeReplacementCharacterConstant    = "�"
	invalidOutputEncodingTemplateConstant   = "captured output is not valid %s: %w"
	unsupportedEncodingTemplateConstant     = "unsupported output encoding %q: %w"
	unresolvableEncodingTemplateConstant    = "unsupported output encoding %q"
	encodingDecodeFailureTemplateConstant   = "unable to decode captured output as %s: %w"
	strictPolicyUnsupportedTemplateConstant = "strict decode policy is not supported for encoding %q"
)

// decodeCapturedOutput converts captured child output bytes into text using
// the configured encoding. The strict policy fails on invalid UTF-8; the
// replace policy substitutes the Unicode replacement character. Non-UTF-8
// encodings are resolved through the IANA registry, whose decoders substitute
// rather than fail, so the strict policy is refused for them instead of
// silently degrading to replacement.
func decodeCapturedOutput(capturedBytes []byte, encodingName string, decodeErrorPolicy DecodeErrorPolicy) (string, error) {
	normalizedEncodingName := strings.ToLower(strings.TrimSpace(encodingName))
	if len(normalizedEncodingName) == 0 {
		normalizedEncodingName = utf8CanonicalEncodingNameConstant
	}

	if normalizedEncodingName == utf8CanonicalEncodingNameConstant || normalizedEncodingName == utf8AlternateEncodingNameConstant {
		return decodeUTF8Output(capturedBytes, decodeErrorPolicy)
	}

	if decodeErrorPolicy == DecodeErrorPolicyStrict {
		return "", fmt.Errorf(strictPolicyUnsupportedTemplateConstant, encodingName)
	}

	resolvedEncoding, lookupError := ianaindex.IANA.Encoding(normalizedEncodingName)
	if lookupError != nil {
		return "", fmt.Errorf(unsupportedEncodingTemplateConstant, encodingName, lookupError)
	}
	if resolvedEncoding == nil {
		return "", fmt.Errorf(unresolvableEncodingTemplateConstant, encodingName)
	}

	decodedBytes, decodeError := resolvedEncoding.NewDecoder().Bytes(capturedBytes)
	if decodeError != nil {
		return "", fmt.Errorf(encodingDecodeFailureTemplateConstant, encodingName, decodeError)
	}
	return string(decodedBytes), nil
}

func decodeUTF8Output(capturedBytes []byte, decodeErrorPolicy DecodeErrorPolicy) (string, error) {
	capturedText := string(capturedBytes)
	if decodeErrorPolicy == DecodeErrorPolicyStrict {
		validatedText, _, validationError := transform.String(encoding.UTF8Validator, capturedText)
		if validationError != nil {
			return "", fmt.Errorf(invalidOutputEncodingTemplateConstant, utf8CanonicalEncodingNameConstant, validationError)
		}
		return validatedText, nil
	}
	return strings.ToValidUTF8(capturedText, unicodeReplacementCharacterConstant), nil
}
