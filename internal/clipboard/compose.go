package clipboard

import (
	"fmt"
	"strings"

	"tabbatch/internal/services"
)

const polishInstructions = "这是一个商品的商详，是机器翻译的结果，在不改变原来框架结构和行文内容的基础上，我需要你从两个维度检查，语言维度和商详维度，最后润色到如同德语母语者说的。\n\n" +
	"（1）语言层面：从德语母语者视角出发，审视是否有语法错误，是否有不准确不地道的搭配，是否有不合适的词汇，是否有中文乱码英文乱码，是否有错误的拼写等其他语言上不恰当需要润色的地方；\n\n" +
	"（2）商详维度，根据你的经验，不同类目的商详文字特点，3C Beauty等等类目标品的商详内容。帮我检查这段德语商详写得怎么样，有没有润色的地方，要求内容表达和框架结构上上不要修改，只润色语言。\n\n" +
	"不用输出思考和分析过程，只写给出润色后的德语结果，只有副标题加粗，副标题前不要有123序列号。"

const (
	dictionaryHeader = "产品描述, Product description, 1.Produktbeschreibung, Produktbeschreibung, Kurzbeschreibung,"
	dictionaryRows   = 15
)

// PolishPrompt appends the review instructions to a machine-translated
// German product description.
func PolishPrompt(text string) (string, error) {
	original := strings.TrimSpace(text)
	if original == "" {
		return "", services.Wrap(services.ErrValidation, "clipboard", "polish prompt", "empty product description", nil)
	}
	return original + "\n\n" + polishInstructions, nil
}

// DictionaryTemplate returns the glossary skeleton: a header row followed by
// numbered placeholder rows.
func DictionaryTemplate() string {
	lines := make([]string, 0, dictionaryRows)
	lines = append(lines, dictionaryHeader)
	for i := 2; i <= dictionaryRows; i++ {
		lines = append(lines, fmt.Sprintf("%d. ", i))
	}
	return strings.Join(lines, "\n")
}
