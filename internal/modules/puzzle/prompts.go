package puzzle

import (
	"fmt"
	"strings"
)

const (
	puzzleSystemPrompt = "你是一个专业的谜题设计师，擅长创造有趣且有深度的解谜内容。"

	puzzlePromptTemplate = `%s

你是一个创意谜题设计师，需要根据以下关键词创建一个藏宝图谜题：
关键词：%s
难度：%s

请生成以下内容（以JSON格式）：
1. story: 一个引人入胜的背景故事（100-200字）
2. question: 需要解答的谜题问题
3. answer: 谜题的正确答案（简短明确，1-5个字）
4. hints: 3个由易到难的提示

回复格式：
{
    "story": "故事内容...",
    "question": "谜题问题...",
    "answer": "答案",
    "hints": ["提示1", "提示2", "提示3"]
}

只返回JSON，不要其他文字。`

	imagePromptTemplate = `Create a %s style illustration:
%s

Style: Vintage treasure map aesthetic, aged paper texture,
mysterious symbols, compass rose, decorative borders.
Make it look like an ancient, hand-drawn treasure map.`

	validationPromptTemplate = `判断用户答案是否与正确答案语义相同：

问题：%s
正确答案：%s
用户答案：%s

只需回复JSON格式：
{
    "is_correct": true/false,
    "explanation": "解释原因"
}`

	// Image prompts are capped at the DALL-E limit.
	maxImagePromptRunes = 4000
)

var difficultyPhrases = map[string][2]string{
	DifficultyEasy:   {"简单，答案比较直观", "easy, the answer is straightforward"},
	DifficultyMedium: {"中等难度，需要一些思考", "medium difficulty, requires some thinking"},
	DifficultyHard:   {"困难，需要仔细分析多个线索", "hard, requires careful analysis of multiple clues"},
}

// DifficultyPhrase returns the fixed description for difficulty in language.
// Unknown difficulties read as medium; any language but zh reads as English.
func DifficultyPhrase(difficulty, language string) string {
	phrases, ok := difficultyPhrases[difficulty]
	if !ok {
		phrases = difficultyPhrases[DifficultyMedium]
	}
	if language == LanguageZH {
		return phrases[0]
	}
	return phrases[1]
}

func languageInstruction(language string) string {
	if language == LanguageZH {
		return "请用中文回复"
	}
	return "Please respond in English"
}

// BuildPuzzlePrompt renders the user prompt for puzzle generation.
func BuildPuzzlePrompt(keywords []string, difficulty, language string) string {
	return fmt.Sprintf(puzzlePromptTemplate,
		languageInstruction(language),
		strings.Join(keywords, ", "),
		DifficultyPhrase(difficulty, language),
	)
}

// BuildImagePrompt renders the image prompt, truncated to maxImagePromptRunes.
func BuildImagePrompt(description, style string) string {
	if strings.TrimSpace(style) == "" {
		style = DefaultImageStyle
	}
	return truncateRunes(fmt.Sprintf(imagePromptTemplate, style, description), maxImagePromptRunes)
}

func buildValidationPrompt(question, userAnswer, correctAnswer string) string {
	return fmt.Sprintf(validationPromptTemplate, question, correctAnswer, userAnswer)
}

func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
