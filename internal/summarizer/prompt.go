package summarizer

import "fmt"

const promptTemplate = "You are an expert assistant specialized in summarizing text. " +
	"Summarize the following notes into clear, concise bullet points. " +
	"The desired summary style is: %s.\n\n" +
	"Original Text:\n\"\"\"\n%s\n\"\"\""

// BuildPrompt renders the model prompt for text at the desired length.
func BuildPrompt(text string, length int) string {
	return fmt.Sprintf(promptTemplate, LengthStyle(length), text)
}
