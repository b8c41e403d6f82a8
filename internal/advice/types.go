package advice

// Message is one chat turn sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the chat-completion request body.
type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// CompletionResponse covers the response shapes seen from chat-completion
// vendors: chat choices, legacy text choices and the responses-style output
// list.
type CompletionResponse struct {
	Choices []Choice `json:"choices"`
	Output  []Output `json:"output"`
}

// Choice is a single completion choice.
type Choice struct {
	Message *Message `json:"message"`
	Text    string   `json:"text"`
}

// Output is one item of a responses-style output list.
type Output struct {
	Content []OutputContent `json:"content"`
}

// OutputContent is a content part of an Output item.
type OutputContent struct {
	Text string `json:"text"`
}

// Text returns the first non-empty advice text in the order
// choices[0].message.content, choices[0].text, output[0].content[0].text.
// It returns "" when none is present.
func (r CompletionResponse) Text() string {
	if len(r.Choices) > 0 {
		c := r.Choices[0]
		if c.Message != nil && c.Message.Content != "" {
			return c.Message.Content
		}
		if c.Text != "" {
			return c.Text
		}
	}
	if len(r.Output) > 0 && len(r.Output[0].Content) > 0 {
		return r.Output[0].Content[0].Text
	}
	return ""
}
