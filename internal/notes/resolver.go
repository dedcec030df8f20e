package notes

import (
	"fmt"
	"regexp"
)

// videoIDPattern matches the canonical YouTube link shapes: watch?v=,
// youtu.be/, embed/, bare /v/ and /u/<lang>/ path segments, and &v= inside
// compound query strings. The captured identifier is validated for length
// separately so a 12-character ID is rejected rather than truncated.
var videoIDPattern = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|/embed/|watch\?v=|[?&]v=)([^#&?/\s]+)`)

const videoIDLength = 11

// placeholderTranscript stands in for the transcript-fetch collaborator that
// is not integrated yet. The output is deterministic for a given video ID so
// downstream behavior is reproducible, and the bracketed label keeps it from
// ever being mistaken for a real transcript.
const placeholderTranscript = `[Sample Content for Video: %s]
This is sample educational content for demonstration. In production, this would be the actual YouTube transcript.
Key Topics: This demonstrates how the StudyTube AI system generates comprehensive study notes from video content.
The system processes educational videos and creates structured study materials to help students learn effectively.`

// Resolve turns a generation request into plain text suitable for prompting.
// Raw content is used verbatim; a URL must yield an 11-character video ID or
// the request fails with ErrInvalidReference.
func Resolve(req *GenerateRequest) (string, error) {
	if req.Content != "" {
		return req.Content, nil
	}
	if req.URL == "" {
		return "", ErrMissingReference
	}

	id, err := ExtractVideoID(req.URL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(placeholderTranscript, id), nil
}

// ExtractVideoID pulls the 11-character video identifier out of a YouTube URL.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil || len(m[1]) != videoIDLength {
		return "", ErrInvalidReference
	}
	return m[1], nil
}
