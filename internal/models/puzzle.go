package models

// FragmentKind classifies a code fragment for syntax styling.
type FragmentKind string

const (
	KindKeyword     FragmentKind = "keyword"
	KindString      FragmentKind = "string"
	KindNumber      FragmentKind = "number"
	KindOperator    FragmentKind = "operator"
	KindVariable    FragmentKind = "variable"
	KindFunction    FragmentKind = "function"
	KindPunctuation FragmentKind = "punctuation"
	KindComment     FragmentKind = "comment"
)

// CodeFragment is an atomic piece of code the learner arranges.
// Fragment ids are unique within one puzzle's solution and distractors.
type CodeFragment struct {
	ID          string       `json:"id"`
	Content     string       `json:"content"`
	IndentLevel int          `json:"indent_level"`
	Kind        FragmentKind `json:"kind"`
}

type Difficulty string

const (
	DifficultyBeginner Difficulty = "beginner"
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
)

// LayoutMode controls whether a puzzle is assembled token-by-token or
// line-by-line.
type LayoutMode string

const (
	LayoutToken LayoutMode = "token"
	LayoutLine  LayoutMode = "line"
)

// PuzzleMetadata records where a puzzle came from.
type PuzzleMetadata struct {
	Source      string `json:"source"` // "manual" or "ai-generated"
	GeneratedAt string `json:"generated_at,omitempty"`
	ModelID     string `json:"model_id,omitempty"`
	CodeHash    string `json:"code_hash,omitempty"`
}

// Puzzle is one reassembly exercise. Immutable at runtime; supplied by the
// content provider.
type Puzzle struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"category_id"`
	Difficulty     Difficulty      `json:"difficulty"`
	Order          int             `json:"order"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ExpectedOutput string          `json:"expected_output,omitempty"`
	Explanation    string          `json:"explanation,omitempty"`
	LayoutMode     LayoutMode      `json:"layout_mode"`
	Solution       []CodeFragment  `json:"solution"`
	Distractors    []CodeFragment  `json:"distractors,omitempty"`
	Hints          []string        `json:"hints"`
	Points         int             `json:"points"`
	Tags           []string        `json:"tags"`
	Metadata       *PuzzleMetadata `json:"metadata,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
}
