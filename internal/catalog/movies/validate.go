package movies

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	FieldTitle     = "title"
	FieldYear      = "year"
	FieldRate      = "rate"
	FieldStoryLine = "story_line"
	FieldGenreID   = "genre_id"
	FieldPoster    = "poster"

	MaxTitleLen     = 250
	MaxStoryLineLen = 2500
	MinRate         = 1.0
	MaxRate         = 10.0
)

// validateForm: 生の入力をパースし、項目ごとのエラーをまとめて返す。
// エラーがあっても、パースできた値はフォームに残す（再表示用）。
func validateForm(in FormInput) (MovieForm, []FieldError) {
	var form MovieForm
	var errs []FieldError
	add := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	form.Title = normalizeText(in.Title)
	switch n := utf8.RuneCountInString(form.Title); {
	case n == 0:
		add(FieldTitle, "title is required")
	case n > MaxTitleLen:
		add(FieldTitle, fmt.Sprintf("title must be at most %d characters", MaxTitleLen))
	}

	if y, err := strconv.Atoi(strings.TrimSpace(in.Year)); err != nil {
		add(FieldYear, "year must be a whole number")
	} else {
		form.Year = y
	}

	if r, err := strconv.ParseFloat(strings.TrimSpace(in.Rate), 64); err != nil || math.IsNaN(r) {
		add(FieldRate, "rate must be a number")
	} else {
		form.Rate = r
		if r < MinRate || r > MaxRate {
			add(FieldRate, fmt.Sprintf("rate must be between %g and %g", MinRate, MaxRate))
		}
	}

	form.StoryLine = normalizeText(in.StoryLine)
	switch n := utf8.RuneCountInString(form.StoryLine); {
	case n == 0:
		add(FieldStoryLine, "story line is required")
	case n > MaxStoryLineLen:
		add(FieldStoryLine, fmt.Sprintf("story line must be at most %d characters", MaxStoryLineLen))
	}

	if g, err := strconv.ParseUint(strings.TrimSpace(in.GenreID), 10, 8); err != nil || g == 0 {
		add(FieldGenreID, "please select a genre")
	} else {
		form.GenreID = uint8(g)
	}

	return form, errs
}

// 前後の空白を落として NFC に揃える（文字数は合成後で数える）
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
