// Package prompt builds the instruction payloads sent to the
// text-generation service. Builders are pure functions; input
// validation is the orchestrator's job.
package prompt

import (
	"fmt"
	"strings"
)

// Prompt is a system directive plus user content.
type Prompt struct {
	System string
	User   string
}

// planSystemPrompt instructs the model to produce the narrative plan.
const planSystemPrompt = `You are a startup mentor helping a non-technical founder reach an MVP.
Given a product idea, write a practical, encouraging plan in markdown.

The plan must cover, in order:
1. Problem and target user
2. The smallest possible MVP scope
3. How to validate demand before building
4. Suggested no-code or low-code tools
5. A rough 4-week timeline

Write plain markdown. Do not wrap the plan in code fences. Do not ask
questions or add meta commentary; output only the plan itself.`

// breakdownSystemPrompt instructs the model to decompose a plan into the
// strict tasks JSON document. Output shape violations are rejected
// downstream, so the contract is spelled out aggressively here.
const breakdownSystemPrompt = `You are a project planner. You receive a product idea and its plan, and output ONLY a valid JSON object. No explanations, no commentary, no markdown fences - just the JSON object.

Break the plan into 3-6 top-level tasks a non-technical founder can
execute, ordered by execution sequence (design before build, build
before launch). Each task has 2-6 concrete subtasks.

Output JSON with exactly this shape:
{
  "tasks": [
    {
      "title": "Task title",
      "description": "What this task accomplishes and why it matters",
      "phase": "Design|Develop|Market",
      "subtasks": [
        {
          "title": "Subtask title",
          "description": "A single concrete action, 30min-2hrs of work"
        }
      ]
    }
  ]
}

Output ONLY valid JSON:`

// PlanPrompt builds the plan-generation instruction.
func PlanPrompt(title, description string) Prompt {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("PRODUCT IDEA: %s\n\n", title))
	b.WriteString(fmt.Sprintf("DESCRIPTION:\n%s\n", description))
	return Prompt{
		System: planSystemPrompt,
		User:   b.String(),
	}
}

// BreakdownPrompt builds the task-breakdown instruction from an idea and
// its already-generated plan.
func BreakdownPrompt(title, description, plan string) Prompt {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("PRODUCT IDEA: %s\n\n", title))
	b.WriteString(fmt.Sprintf("DESCRIPTION:\n%s\n\n", description))
	b.WriteString(fmt.Sprintf("PLAN:\n%s\n", plan))
	return Prompt{
		System: breakdownSystemPrompt,
		User:   b.String(),
	}
}
