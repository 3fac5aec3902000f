package puzzle

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuildPuzzlePromptContainsKeywordsAndPhrase(t *testing.T) {
	keywords := []string{"pirate", "月亮", "golden key"}
	want := map[string]map[string]string{
		LanguageZH: {
			DifficultyEasy:   "简单，答案比较直观",
			DifficultyMedium: "中等难度，需要一些思考",
			DifficultyHard:   "困难，需要仔细分析多个线索",
		},
		LanguageEN: {
			DifficultyEasy:   "easy, the answer is straightforward",
			DifficultyMedium: "medium difficulty, requires some thinking",
			DifficultyHard:   "hard, requires careful analysis of multiple clues",
		},
	}

	for language, phrases := range want {
		for difficulty, phrase := range phrases {
			t.Run(language+"/"+difficulty, func(t *testing.T) {
				prompt := BuildPuzzlePrompt(keywords, difficulty, language)
				for _, kw := range keywords {
					assert.Contains(t, prompt, kw)
				}
				assert.Contains(t, prompt, "pirate, 月亮, golden key")
				assert.Contains(t, prompt, phrase)
			})
		}
	}
}

func TestBuildPuzzlePromptLanguageInstruction(t *testing.T) {
	assert.True(t, strings.HasPrefix(BuildPuzzlePrompt([]string{"a"}, DifficultyEasy, LanguageZH), "请用中文回复"))
	assert.True(t, strings.HasPrefix(BuildPuzzlePrompt([]string{"a"}, DifficultyEasy, LanguageEN), "Please respond in English"))
	assert.True(t, strings.HasPrefix(BuildPuzzlePrompt([]string{"a"}, DifficultyEasy, "fr"), "Please respond in English"))
}

func TestDifficultyPhraseUnknownFallsBackToMedium(t *testing.T) {
	assert.Equal(t, "中等难度，需要一些思考", DifficultyPhrase("nightmare", LanguageZH))
	assert.Equal(t, "medium difficulty, requires some thinking", DifficultyPhrase("", LanguageEN))
	assert.Equal(t, "hard, requires careful analysis of multiple clues", DifficultyPhrase(DifficultyHard, "de"))
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := BuildImagePrompt("an island with three palm trees", "")
	assert.Contains(t, prompt, "treasure map style")
	assert.Contains(t, prompt, "an island with three palm trees")
	assert.Contains(t, prompt, "aged paper texture")
	assert.Contains(t, prompt, "compass rose")

	long := BuildImagePrompt(strings.Repeat("宝", 5000), "ink")
	assert.Equal(t, maxImagePromptRunes, utf8.RuneCountInString(long))
	assert.True(t, utf8.ValidString(long))
	assert.Contains(t, long, "Create a ink style illustration")
}

func TestGenerationRequestWithDefaults(t *testing.T) {
	req := GenerationRequest{Keywords: []string{"k"}}.WithDefaults()
	assert.Equal(t, DifficultyMedium, req.Difficulty)
	assert.Equal(t, LanguageZH, req.Language)

	req = GenerationRequest{Keywords: []string{"k"}, Difficulty: " HARD ", Language: "EN"}.WithDefaults()
	assert.Equal(t, DifficultyHard, req.Difficulty)
	assert.Equal(t, LanguageEN, req.Language)
}
