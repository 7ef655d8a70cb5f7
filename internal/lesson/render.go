package lesson

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"regexp"
	"strings"
)

// OptionState is how a quiz option is presented to the learner
type OptionState string

const (
	// OptionNeutral is an option before the attempt is submitted
	OptionNeutral OptionState = "neutral"
	// OptionCorrect is the correct option after submission
	OptionCorrect OptionState = "correct"
	// OptionIncorrect is the selected option after submission when it is wrong
	OptionIncorrect OptionState = "incorrect"
	// OptionMuted is any other option after submission
	OptionMuted OptionState = "muted"
)

// QuizAttempt is the learner's transient state on one quiz. It is never written
// back into the lesson content.
type QuizAttempt struct {
	Selected  string `json:"selected,omitempty"`
	Submitted bool   `json:"submitted"`
}

// Select chooses an option. Unknown options and selections after submission are ignored.
func (a QuizAttempt) Select(q *QuizContent, optionID string) QuizAttempt {
	if a.Submitted || q.optionIndex(optionID) < 0 {
		return a
	}
	a.Selected = optionID
	return a
}

// Submit reveals the result. It requires a selection.
func (a QuizAttempt) Submit() QuizAttempt {
	if a.Selected != "" {
		a.Submitted = true
	}
	return a
}

// Reset clears the attempt
func (a QuizAttempt) Reset() QuizAttempt {
	return QuizAttempt{}
}

// RenderedOption is a quiz option as shown to the learner
type RenderedOption struct {
	ID       string      `json:"id"`
	Text     string      `json:"text"`
	Selected bool        `json:"selected"`
	State    OptionState `json:"state"`
}

// QuizResult is the evaluation of an attempt
type QuizResult struct {
	Submitted bool             `json:"submitted"`
	Correct   bool             `json:"correct"`
	Options   []RenderedOption `json:"options"`
}

// Evaluate presents the options of q for an attempt
func (a QuizAttempt) Evaluate(q *QuizContent) QuizResult {
	result := QuizResult{
		Submitted: a.Submitted,
		Options:   make([]RenderedOption, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		ro := RenderedOption{ID: o.ID, Text: o.Text, Selected: o.ID == a.Selected, State: OptionNeutral}
		if a.Submitted {
			switch {
			case o.IsCorrect:
				ro.State = OptionCorrect
			case ro.Selected:
				ro.State = OptionIncorrect
			default:
				ro.State = OptionMuted
			}
			if ro.Selected && o.IsCorrect {
				result.Correct = true
			}
		}
		result.Options = append(result.Options, ro)
	}
	return result
}

// RenderedBlock is a block prepared for read-only display
type RenderedBlock struct {
	ID       string        `json:"id"`
	Type     BlockType     `json:"type"`
	Order    int           `json:"order"`
	HTML     template.HTML `json:"html,omitempty"`
	VideoURL string        `json:"videoUrl,omitempty"`
	EmbedURL string        `json:"embedUrl,omitempty"`
	ImageURL string        `json:"imageUrl,omitempty"`
	Caption  string        `json:"caption,omitempty"`
	Question string        `json:"question,omitempty"`
	Quiz     *QuizResult   `json:"quiz,omitempty"`
	Attempt  *QuizAttempt  `json:"attempt,omitempty"`
	// Carry holds the attempts on the other quizzes of the page, so that
	// submitting this quiz's form keeps them
	Carry []HiddenField `json:"carry,omitempty"`
}

// HiddenField is a query parameter a form sends along unchanged
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// renderer builds one RenderedBlock per visited content
type renderer struct {
	out     RenderedBlock
	attempt QuizAttempt
}

func (r *renderer) VisitText(c *TextContent) {
	r.out.HTML = template.HTML(c.HTML)
}

func (r *renderer) VisitVideo(c *VideoContent) {
	r.out.VideoURL = c.URL
	r.out.EmbedURL = EmbedURL(c.URL)
}

func (r *renderer) VisitImage(c *ImageContent) {
	r.out.ImageURL = c.URL
	r.out.Caption = c.Caption
}

func (r *renderer) VisitQuiz(c *QuizContent) {
	r.out.Question = c.Question
	result := r.attempt.Evaluate(c)
	attempt := r.attempt
	r.out.Quiz = &result
	r.out.Attempt = &attempt
}

// Render prepares blocks for display in ascending order. attempts holds the learner's
// state per quiz block id and may be nil.
func Render(blocks []Block, attempts map[string]QuizAttempt) []RenderedBlock {
	sorted := SortedBlocks(blocks)
	out := make([]RenderedBlock, 0, len(sorted))
	for _, b := range sorted {
		if b.Content == nil {
			continue
		}
		r := &renderer{
			out:     RenderedBlock{ID: b.ID, Type: b.Type(), Order: b.Order},
			attempt: attempts[b.ID],
		}
		b.Content.Accept(r)
		out = append(out, r.out)
	}
	carryAttempts(out)
	return out
}

// carryAttempts fills Carry on every quiz with the attempts on the other quizzes
func carryAttempts(blocks []RenderedBlock) {
	type owned struct {
		blockID string
		field   HiddenField
	}
	var fields []owned
	for _, b := range blocks {
		if b.Attempt == nil {
			continue
		}
		if b.Attempt.Selected != "" {
			fields = append(fields, owned{b.ID, HiddenField{Name: ParamAnswerPrefix + b.ID, Value: b.Attempt.Selected}})
		}
		if b.Attempt.Submitted {
			fields = append(fields, owned{b.ID, HiddenField{Name: ParamSubmittedPrefix + b.ID, Value: "1"}})
		}
	}

	for i := range blocks {
		if blocks[i].Attempt == nil {
			continue
		}
		for _, f := range fields {
			if f.blockID != blocks[i].ID {
				blocks[i].Carry = append(blocks[i].Carry, f.field)
			}
		}
	}
}

var youtubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)

// EmbedURL converts a YouTube watch, short-link, shorts, live or embed URL into the
// embed form. Any other URL is returned unchanged.
func EmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live" || segments[0] == "v"):
			id = segments[1]
		}
	}

	if !youtubeID.MatchString(id) {
		return raw
	}
	return "https://www.youtube.com/embed/" + id
}

// Query parameter prefixes for quiz attempts in rendered lesson links
const (
	ParamAnswerPrefix    = "answer."
	ParamSubmittedPrefix = "submitted."
)

// ParseAttempts reads quiz attempts from query values of the form
// answer.<blockID>=<optionID> and submitted.<blockID>=1
func ParseAttempts(values url.Values, blocks []Block) map[string]QuizAttempt {
	attempts := map[string]QuizAttempt{}
	for _, b := range blocks {
		q, ok := b.Content.(*QuizContent)
		if !ok {
			continue
		}
		a := QuizAttempt{}.Select(q, values.Get(ParamAnswerPrefix+b.ID))
		if values.Get(ParamSubmittedPrefix+b.ID) != "" {
			a = a.Submit()
		}
		if a != (QuizAttempt{}) {
			attempts[b.ID] = a
		}
	}
	return attempts
}

//go:embed templates/*.html
var templateFS embed.FS

var lessonTemplate = template.Must(template.New("lesson.html").
	Funcs(template.FuncMap{"mediaSrc": mediaSrc}).
	ParseFS(templateFS, "templates/lesson.html"))

// mediaSrc marks http(s) URLs and image data URLs as safe for src attributes.
// Anything else is left to html/template's URL filtering.
func mediaSrc(raw string) any {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "data:image/") {
		return template.URL(raw)
	}
	return raw
}

// RenderHTML writes rendered blocks as an HTML fragment
func RenderHTML(w io.Writer, title string, blocks []RenderedBlock) error {
	data := struct {
		Title  string
		Blocks []RenderedBlock
	}{Title: title, Blocks: blocks}

	if err := lessonTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render lesson: %w", err)
	}
	return nil
}
