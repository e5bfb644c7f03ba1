package agent

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"studybuddy/services"
)

// Tool is a named capability the agent can invoke during an action step.
// Input is the free-form string the model supplies; username scopes all
// store access to the querying student.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input, username string) (string, error)
}

// Registry is the fixed name-to-tool table built once at startup.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	registry := &Registry{tools: make(map[string]Tool)}
	for _, tool := range tools {
		if _, exists := registry.tools[tool.Name()]; exists {
			continue
		}
		registry.tools[tool.Name()] = tool
		registry.order = append(registry.order, tool.Name())
	}
	return registry
}

// Resolve looks a tool up by exact, case-sensitive name. Absence is the
// caller's concern, not an error.
func (r *Registry) Resolve(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Tools returns the registered tools in registration order, for prompt
// enumeration.
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Invoke runs a tool and always produces an observation string. Tool
// errors and panics are converted into human-readable descriptions so a
// failing tool never ends the conversation turn.
func (r *Registry) Invoke(ctx context.Context, tool Tool, input, username string) (observation string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[ERROR] Tool %s panicked: %v", tool.Name(), recovered)
			observation = fmt.Sprintf("Tool '%s' failed: %v", tool.Name(), recovered)
		}
	}()

	log.Printf("[INFO] Executing tool %s with input %q", tool.Name(), input)

	output, err := tool.Call(ctx, input, username)
	if err != nil {
		log.Printf("[ERROR] Tool %s failed: %v", tool.Name(), err)
		return fmt.Sprintf("Tool '%s' failed: %v", tool.Name(), err)
	}

	return output
}

type CreateStudyPlanTool struct {
	planService *services.PlanService
}

func NewCreateStudyPlanTool(planService *services.PlanService) CreateStudyPlanTool {
	return CreateStudyPlanTool{planService: planService}
}

func (t CreateStudyPlanTool) Name() string {
	return "create_study_plan"
}

func (t CreateStudyPlanTool) Description() string {
	return "Creates a personalized study plan based on subject and timeline. Input format: 'Subject: Math, Goal: Master Algebra in 2 weeks'"
}

func (t CreateStudyPlanTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.planService.CreateFromRequest(input, username)
}

type AnswerQuestionTool struct {
	materialService *services.MaterialService
}

func NewAnswerQuestionTool(materialService *services.MaterialService) AnswerQuestionTool {
	return AnswerQuestionTool{materialService: materialService}
}

func (t AnswerQuestionTool) Name() string {
	return "answer_question"
}

func (t AnswerQuestionTool) Description() string {
	return "Answers a subject-specific question. Input format: 'What's 2x + 3 = 7?'"
}

func (t AnswerQuestionTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.materialService.AnswerQuestion(input, username)
}

type GenerateQuizTool struct {
	quizService *services.QuizService
}

func NewGenerateQuizTool(quizService *services.QuizService) GenerateQuizTool {
	return GenerateQuizTool{quizService: quizService}
}

func (t GenerateQuizTool) Name() string {
	return "generate_quiz"
}

func (t GenerateQuizTool) Description() string {
	return "Generates a quiz on a specific topic. Input format: 'Linear Equations'"
}

func (t GenerateQuizTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.quizService.Generate(strings.TrimSpace(input), username)
}

type CheckQuizAnswerTool struct {
	quizService *services.QuizService
}

func NewCheckQuizAnswerTool(quizService *services.QuizService) CheckQuizAnswerTool {
	return CheckQuizAnswerTool{quizService: quizService}
}

func (t CheckQuizAnswerTool) Name() string {
	return "check_quiz_answer"
}

func (t CheckQuizAnswerTool) Description() string {
	return "Checks a quiz answer against the correct answer. Input format: 'Question: Solve for x: 3x + 5 = 14, Answer: x = 3'"
}

func (t CheckQuizAnswerTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.quizService.CheckAnswer(input, username)
}

type TrackProgressTool struct {
	progressService *services.ProgressService
}

func NewTrackProgressTool(progressService *services.ProgressService) TrackProgressTool {
	return TrackProgressTool{progressService: progressService}
}

func (t TrackProgressTool) Name() string {
	return "track_progress"
}

func (t TrackProgressTool) Description() string {
	return "Updates and reports on the user's learning progress. Input can be a specific topic or empty for overall progress."
}

func (t TrackProgressTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.progressService.Track(strings.TrimSpace(input), username)
}

type UpdateTopicProgressTool struct {
	progressService *services.ProgressService
}

func NewUpdateTopicProgressTool(progressService *services.ProgressService) UpdateTopicProgressTool {
	return UpdateTopicProgressTool{progressService: progressService}
}

func (t UpdateTopicProgressTool) Name() string {
	return "update_topic_progress"
}

func (t UpdateTopicProgressTool) Description() string {
	return "Sets progress (0-100) for a topic in the current study plan. Input format: 'Linear Equations: 75'"
}

func (t UpdateTopicProgressTool) Call(ctx context.Context, input, username string) (string, error) {
	topic, value, found := strings.Cut(input, ":")
	if !found {
		return "Invalid format. Please submit in format '[topic name]: [progress 0-100]'", nil
	}

	topic = strings.TrimSpace(topic)
	progress, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Sprintf("Invalid progress value %q, expected a number between 0 and 100.", strings.TrimSpace(value)), nil
	}

	updated, err := t.progressService.UpdateTopic(topic, progress, username)
	if err != nil {
		return "", err
	}
	if !updated {
		return fmt.Sprintf("Topic '%s' not found in your study plan.", topic), nil
	}
	return fmt.Sprintf("Updated progress on '%s' to %d%%.", topic, progress), nil
}

type RetrieveLearningMaterialTool struct {
	materialService *services.MaterialService
}

func NewRetrieveLearningMaterialTool(materialService *services.MaterialService) RetrieveLearningMaterialTool {
	return RetrieveLearningMaterialTool{materialService: materialService}
}

func (t RetrieveLearningMaterialTool) Name() string {
	return "retrieve_learning_material"
}

func (t RetrieveLearningMaterialTool) Description() string {
	return "Retrieves learning materials for a specific topic. Input format: 'Linear Equations'"
}

func (t RetrieveLearningMaterialTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.materialService.Retrieve(strings.TrimSpace(input)), nil
}

type MarkTopicCompleteTool struct {
	planService *services.PlanService
}

func NewMarkTopicCompleteTool(planService *services.PlanService) MarkTopicCompleteTool {
	return MarkTopicCompleteTool{planService: planService}
}

func (t MarkTopicCompleteTool) Name() string {
	return "mark_topic_complete"
}

func (t MarkTopicCompleteTool) Description() string {
	return "Marks a topic as completed in the study plan. Input format: 'Linear Equations'"
}

func (t MarkTopicCompleteTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.planService.MarkTopicComplete(strings.TrimSpace(input), username)
}

type WikipediaLookupTool struct {
	lookupService *services.LookupService
}

func NewWikipediaLookupTool(lookupService *services.LookupService) WikipediaLookupTool {
	return WikipediaLookupTool{lookupService: lookupService}
}

func (t WikipediaLookupTool) Name() string {
	return "wikipedia_lookup"
}

func (t WikipediaLookupTool) Description() string {
	return "Looks up an encyclopedia summary of a topic on Wikipedia. Input format: 'Pythagorean theorem'"
}

func (t WikipediaLookupTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.lookupService.Wikipedia(input)
}

type WebSearchTool struct {
	lookupService *services.LookupService
}

func NewWebSearchTool(lookupService *services.LookupService) WebSearchTool {
	return WebSearchTool{lookupService: lookupService}
}

func (t WebSearchTool) Name() string {
	return "web_search"
}

func (t WebSearchTool) Description() string {
	return "Searches the web for quick factual answers. Input format: 'history of calculus'"
}

func (t WebSearchTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.lookupService.WebSearch(input)
}

type AcademicSearchTool struct {
	lookupService *services.LookupService
}

func NewAcademicSearchTool(lookupService *services.LookupService) AcademicSearchTool {
	return AcademicSearchTool{lookupService: lookupService}
}

func (t AcademicSearchTool) Name() string {
	return "academic_search"
}

func (t AcademicSearchTool) Description() string {
	return "Finds academic papers on a topic via arXiv. Input format: 'spaced repetition learning'"
}

func (t AcademicSearchTool) Call(ctx context.Context, input, username string) (string, error) {
	return t.lookupService.AcademicSearch(input)
}
