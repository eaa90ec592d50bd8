// Package dsl 提供基于 CEL (Common Expression Language) 的表达式过滤，
// 用于在不改代码的情况下按属性表达过滤策略。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/scentkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是属性 DSL 解释器。
//
// 表达式语法（CEL 标准语法）：
//   - 属性比较：item.price_tier == "budget" / item.rating >= 4.0
//   - 列表包含："office" in item.occasions
//   - 逻辑组合：item.beginner_friendly && item.rating_count > 100
//   - 标签：label.recall_source.value == "leaderboard"
//
// 示例：
//   - `item.price_tier != "luxury" && "date" in item.occasions`
//   - `item.compliment_getter || item.rating > 4.2`
type Eval struct {
	item *core.Fragrance
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Fragrance, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式视为恒真。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
		}
	}

	item := map[string]interface{}{}
	if e.item != nil {
		item = map[string]interface{}{
			"id":                e.item.ID,
			"name":              e.item.Name,
			"full_name":         e.item.FullName,
			"gender":            e.item.Gender,
			"rating":            e.item.Rating,
			"rating_count":      e.item.RatingCount,
			"main_accords":      e.item.MainAccords,
			"perfumers":         e.item.Perfumers,
			"price_tier":        string(e.item.PriceTier),
			"occasions":         e.item.Occasions,
			"vibes":             e.item.Vibes,
			"beginner_friendly": e.item.BeginnerFriendly,
			"compliment_getter": e.item.ComplimentGetter,
			"labels":            labels,
		}
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		criteria := e.rctx.GetCriteria()
		rctx = map[string]interface{}{
			"conversation_id": e.rctx.ConversationID,
			"user_text":       e.rctx.UserText,
			"assistant_text":  e.rctx.AssistantText,
			"occasion":        criteria.Occasion,
			"price_tier":      string(criteria.PriceTier),
			"vibe":            criteria.Vibe,
			"params":          e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
		"rctx":  rctx,
	}
}
