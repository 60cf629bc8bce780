package tutor

import (
	"fmt"
	"strings"
)

// answerMarker prefixes answers in the few-shot transcript. Everything
// after its last occurrence in the model output is the answer.
const answerMarker = "A:"

const systemPrompt = `You are a Python programming assistant. Provide accurate answers to questions about Python and include examples.`

const fewShotExample = "Q: How do I add two variables in Python?\n" +
	"A: To add two variables in Python, you can use the + operator. For example:\n" +
	"```python\n" +
	"a = 5\n" +
	"b = 10\n" +
	"c = a + b\n" +
	"print(c)  # Output: 15\n" +
	"```\n"

func buildQuestionMessage(question string) string {
	var b strings.Builder
	b.WriteString("For example:\n\n")
	b.WriteString(fewShotExample)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Q: %s\n", question)
	b.WriteString(answerMarker)
	return b.String()
}
