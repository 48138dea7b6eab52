package content

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/tudoumono/pypuzzle/internal/models"
)

// Column order of the problems sheet:
// id | categoryId | difficulty | order | title | description | layoutMode |
// solution (JSON) | distractors (JSON) | hints (JSON) | points |
// explanation | tags (JSON) | source | codeHash | expectedOutput
const (
	colID = iota
	colCategoryID
	colDifficulty
	colOrder
	colTitle
	colDescription
	colLayoutMode
	colSolution
	colDistractors
	colHints
	colPoints
	colExplanation
	colTags
	colSource
	colCodeHash
	colExpectedOutput
)

// Column order of the categories sheet:
// id | title | description | icon | color | order
const (
	catColID = iota
	catColTitle
	catColDescription
	catColIcon
	catColColor
	catColOrder
)

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellIntOr(row []string, idx, def int) int {
	v := cell(row, idx)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// jsonCell decodes a JSON cell, falling back to the zero value on malformed
// content so one broken row cannot take down the whole sheet.
func jsonCell[T any](row []string, idx int, fallback T) T {
	v := cell(row, idx)
	if v == "" {
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return fallback
	}
	return out
}

// ParsePuzzleRow converts one sheet row into a Puzzle. Rows without an id or
// without a solution are skipped (nil).
func ParsePuzzleRow(row []string) *models.Puzzle {
	id := cell(row, colID)
	if id == "" {
		return nil
	}

	solution := jsonCell(row, colSolution, []models.CodeFragment{})
	if len(solution) == 0 {
		return nil
	}

	difficulty := models.Difficulty(cell(row, colDifficulty))
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}
	layoutMode := models.LayoutMode(cell(row, colLayoutMode))
	if layoutMode == "" {
		layoutMode = models.LayoutToken
	}
	source := cell(row, colSource)
	if source == "" {
		source = "manual"
	}

	return &models.Puzzle{
		ID:             id,
		CategoryID:     cell(row, colCategoryID),
		Difficulty:     difficulty,
		Order:          cellIntOr(row, colOrder, 0),
		Title:          cell(row, colTitle),
		Description:    cell(row, colDescription),
		ExpectedOutput: cell(row, colExpectedOutput),
		Explanation:    cell(row, colExplanation),
		LayoutMode:     layoutMode,
		Solution:       solution,
		Distractors:    jsonCell(row, colDistractors, []models.CodeFragment{}),
		Hints:          jsonCell(row, colHints, []string{}),
		Points:         cellIntOr(row, colPoints, 10),
		Tags:           jsonCell(row, colTags, []string{}),
		Metadata: &models.PuzzleMetadata{
			Source:   source,
			CodeHash: cell(row, colCodeHash),
		},
	}
}

// ParsePuzzleRows parses all data rows, skipping the header row and any rows
// that fail to parse.
func ParsePuzzleRows(rows [][]string) []models.Puzzle {
	if len(rows) <= 1 {
		return nil
	}
	puzzles := make([]models.Puzzle, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if p := ParsePuzzleRow(row); p != nil {
			puzzles = append(puzzles, *p)
		}
	}
	return puzzles
}

// ParseCategoryRow converts one categories-sheet row into a Category.
func ParseCategoryRow(row []string) *models.Category {
	id := cell(row, catColID)
	if id == "" {
		return nil
	}

	title := cell(row, catColTitle)
	if title == "" {
		title = id
	}
	icon := cell(row, catColIcon)
	if icon == "" {
		icon = "Folder"
	}
	color := cell(row, catColColor)
	if color == "" {
		color = "bg-gray-500"
	}

	return &models.Category{
		ID:          id,
		Title:       title,
		Description: cell(row, catColDescription),
		Icon:        icon,
		Color:       color,
		Order:       cellIntOr(row, catColOrder, 0),
	}
}

// ParseCategoryRows parses all category rows, skipping the header, sorted by
// display order.
func ParseCategoryRows(rows [][]string) []models.Category {
	if len(rows) <= 1 {
		return nil
	}
	categories := make([]models.Category, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if c := ParseCategoryRow(row); c != nil {
			categories = append(categories, *c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Order < categories[j].Order })
	return categories
}
