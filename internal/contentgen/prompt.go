package contentgen

import "fmt"

const systemPrompt = `You write beginner-friendly Python course material. Answer with JSON only.`

func buildLessonMessage(topic string) string {
	return fmt.Sprintf(`Generate a structured lesson for the topic %q.

Use %q as the title. The content list must contain, in order:
1. A brief and clear introduction to the topic.
2. Key concepts related to %s.
3. Important aspects, explained concisely.
4. An example where applicable, written as "Example:" followed by the code between triple double quotes.

Keep each entry to a short paragraph. Use plain text, no Markdown headings.`, topic, topic, topic)
}

func buildQuizMessage(topic string, n int) string {
	return fmt.Sprintf(`Generate a multiple choice quiz for the topic %q with exactly %d questions.

Use "Quiz: %s" as the title. Each question has the keys "question", "options" (a list of exactly 4 distinct options) and "answer" (the exact text of the correct option).

List all %d complete question objects. Do not include ellipses, placeholders or commentary.`, topic, n, topic, n)
}
