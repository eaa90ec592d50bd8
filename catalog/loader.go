package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/scentkit/core"
)

// 数据源的列名（源文件为抓取得到的 CSV，列表型字段编码为
// 带括号/引号的逗号分隔字符串，例如 "['woody', 'spicy']"）。
const (
	colName        = "Name"
	colGender      = "Gender"
	colRating      = "Rating Value"
	colRatingCount = "Rating Count"
	colAccords     = "Main Accords"
	colPerfumers   = "Perfumers"
	colDescription = "Description"
	colURL         = "url"
)

// genderPatterns 是全名中的性别后缀，按“更长更具体优先”排列。
// 展示名取后缀之前的部分。
var genderPatterns = []string{"for women and men", "for men", "for women"}

// ErrEmptySource 表示数据源没有表头，无法解析。
var ErrEmptySource = core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: source has no header row")

// Load 从 r 读取 CSV 并解析为香水列表。
//
// 行级问题（字段数不匹配、名称为空、数字/列表字段不合法）跳过该行
// 或代入安全默认值，不会中断整个加载；源级问题（无法读取、表头缺失）
// 返回错误且不产生部分目录。
//
// 目录只收录男用与男女通用的香水；该性别闸门只在加载期应用一次。
func Load(r io.Reader) ([]*core.Fragrance, error) {
	return LoadWithRules(r, DefaultRules())
}

// LoadWithRules 与 Load 相同，但使用调用方提供的推断规则表。
func LoadWithRules(r io.Reader, rules *Rules) ([]*core.Fragrance, error) {
	if rules == nil {
		rules = DefaultRules()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptySource
		}
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: read header: %v", err))
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	if _, ok := idx[colName]; !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: missing column %q", colName))
	}

	field := func(record []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var out []*core.Fragrance
	rowIndex := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// 行级解析问题：跳过该行继续
				continue
			}
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("catalog: read source: %v", err))
		}

		gender := strings.ToLower(field(record, colGender))
		if !strings.Contains(gender, "for men") && !strings.Contains(gender, "for women and men") {
			continue
		}

		// 行号在通过性别闸门的序列内分配：同一数据源重复加载 ID 稳定。
		f := parseRow(record, field, rowIndex, rules)
		rowIndex++
		if f == nil {
			continue
		}
		out = append(out, f)
	}

	return out, nil
}

// LoadFile 从本地文件加载目录。
func LoadFile(path string) ([]*core.Fragrance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: open source: %v", err))
	}
	defer f.Close()
	return Load(f)
}

func parseRow(record []string, field func([]string, string) string, rowIndex int, rules *Rules) *core.Fragrance {
	fullName := field(record, colName)
	if strings.TrimSpace(fullName) == "" {
		return nil
	}

	rating := parseRating(field(record, colRating))
	ratingCount := parseCount(field(record, colRatingCount))

	mainAccords := parseListField(field(record, colAccords))
	perfumers := parseListField(field(record, colPerfumers))
	name := deriveName(fullName)

	return &core.Fragrance{
		ID:          fmt.Sprintf("frag_%d", rowIndex),
		Name:        name,
		FullName:    fullName,
		Gender:      field(record, colGender),
		Rating:      rating,
		RatingCount: ratingCount,
		MainAccords: mainAccords,
		Perfumers:   perfumers,
		Description: field(record, colDescription),
		URL:         field(record, colURL),

		PriceTier:        rules.PriceTier(name),
		Occasions:        rules.OccasionTags(mainAccords),
		Vibes:            rules.VibeTags(mainAccords),
		BeginnerFriendly: rules.BeginnerFriendly(rating, ratingCount),
		ComplimentGetter: rules.IsComplimentGetter(mainAccords),
	}
}

// deriveName 去掉全名中的性别后缀，取后缀前的部分。
// 多个后缀同时出现时取最靠前的；同一位置上更长的模式优先。
func deriveName(fullName string) string {
	lower := strings.ToLower(fullName)
	cut := -1
	for _, pattern := range genderPatterns {
		if i := strings.Index(lower, pattern); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return strings.TrimSpace(fullName)
	}
	return strings.TrimSpace(fullName[:cut])
}

// parseListField 解析形如 "['woody', 'citrus']" 的列表字段。
// 去掉括号与引号后按逗号切分；不合法输入得到空列表而非行失败。
func parseListField(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '\'', '"':
			return -1
		}
		return r
	}, s)

	var out []string
	for _, part := range strings.Split(cleaned, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRating 解析评分；非法/缺失取 0。
func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v != v { // NaN 同样取 0
		return 0
	}
	return v
}

// parseCount 解析评分人数；非法/缺失/负数取 0。
func parseCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
