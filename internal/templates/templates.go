// Package templates holds the built-in interview templates for common roles.
package templates

import "careerprep/interview/internal/models"

// QuestionTemplate is a pre-defined question with metadata.
type QuestionTemplate struct {
	Question         string                `json:"question"`
	Difficulty       models.Difficulty     `json:"difficulty"`
	Source           models.QuestionSource `json:"source"`
	Topic            string                `json:"topic"`
	ExpectedKeywords []string              `json:"expected_keywords,omitempty"`
	FollowUps        []string              `json:"follow_up_questions,omitempty"`
	CodeChallenge    string                `json:"code_challenge,omitempty"`
}

// InterviewTemplate is a complete interview template for a role.
type InterviewTemplate struct {
	ID                       string             `json:"id"`
	Name                     string             `json:"name"`
	Role                     string             `json:"role"`
	Description              string             `json:"description"`
	DefaultNumQuestions      int                `json:"default_num_questions"`
	DifficultyDistribution   map[string]int     `json:"difficulty_distribution"`
	QuestionBank             []QuestionTemplate `json:"question_bank"`
	Topics                   []string           `json:"topics"`
	IncludesCoding           bool               `json:"includes_coding"`
	CodingLanguages          []string           `json:"coding_languages,omitempty"`
	EstimatedDurationMinutes int                `json:"estimated_duration_minutes"`
}

// TemplateSummary is the listing view of a template without its question bank.
type TemplateSummary struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Role                     string   `json:"role"`
	Description              string   `json:"description"`
	IncludesCoding           bool     `json:"includes_coding"`
	Topics                   []string `json:"topics"`
	EstimatedDurationMinutes int      `json:"estimated_duration_minutes"`
	QuestionCount            int      `json:"question_count"`
}

// Get returns a template by ID, or nil if unknown.
func Get(id string) *InterviewTemplate {
	t, ok := catalog[id]
	if !ok {
		return nil
	}
	return t
}

// List returns summaries of all built-in templates.
func List() []TemplateSummary {
	out := make([]TemplateSummary, 0, len(catalog))
	for _, id := range catalogOrder {
		t := catalog[id]
		out = append(out, TemplateSummary{
			ID:                       t.ID,
			Name:                     t.Name,
			Role:                     t.Role,
			Description:              t.Description,
			IncludesCoding:           t.IncludesCoding,
			Topics:                   t.Topics,
			EstimatedDurationMinutes: t.EstimatedDurationMinutes,
			QuestionCount:            len(t.QuestionBank),
		})
	}
	return out
}

var catalogOrder = []string{
	"software_engineer",
	"frontend_developer",
	"product_manager",
	"data_scientist",
	"devops_engineer",
}

var catalog = map[string]*InterviewTemplate{
	"software_engineer": {
		ID:                  "software_engineer",
		Name:                "Software Engineer",
		Role:                "Software Engineer",
		Description:         "Full-stack or backend engineering role with technical and coding questions",
		DefaultNumQuestions: 5,
		DifficultyDistribution: map[string]int{
			"easy": 1, "medium": 3, "hard": 1,
		},
		IncludesCoding:           true,
		CodingLanguages:          []string{"python", "javascript", "typescript"},
		Topics:                   []string{"Data Structures", "Algorithms", "System Design", "Problem Solving", "Behavioral"},
		EstimatedDurationMinutes: 45,
		QuestionBank: []QuestionTemplate{
			{
				Question:         "Explain the difference between a stack and a queue. When would you use each?",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceTechnical,
				Topic:            "Data Structures",
				ExpectedKeywords: []string{"LIFO", "FIFO", "push", "pop", "enqueue", "dequeue", "recursion", "BFS"},
			},
			{
				Question:         "What is the time complexity of searching in a hash table vs a binary search tree?",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceTechnical,
				Topic:            "Data Structures",
				ExpectedKeywords: []string{"O(1)", "O(log n)", "average case", "worst case", "collision"},
			},
			{
				Question:         "Describe a challenging technical problem you solved. What was your approach?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceBehavioral,
				Topic:            "Problem Solving",
				ExpectedKeywords: []string{"debugging", "analysis", "solution", "iteration", "learning"},
			},
			{
				Question:         "How would you design a rate limiter for an API? What data structures would you use?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "System Design",
				ExpectedKeywords: []string{"sliding window", "token bucket", "Redis", "distributed", "concurrency"},
			},
			{
				Question:         "Explain the CAP theorem and its implications for distributed systems.",
				Difficulty:       models.DifficultyHard,
				Source:           models.SourceTechnical,
				Topic:            "System Design",
				ExpectedKeywords: []string{"consistency", "availability", "partition tolerance", "trade-offs", "eventual consistency"},
			},
			{
				Question:         "Design a URL shortener service. How would you handle billions of URLs?",
				Difficulty:       models.DifficultyHard,
				Source:           models.SourceTechnical,
				Topic:            "System Design",
				ExpectedKeywords: []string{"hashing", "base62", "database sharding", "caching", "analytics", "expiration"},
			},
			{
				Question:         "Write a function to find the first non-repeating character in a string.",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceCoding,
				Topic:            "Algorithms",
				ExpectedKeywords: []string{"hash map", "counter", "O(n)", "dictionary"},
				CodeChallenge: "def first_non_repeating(s: str) -> str:\n" +
					"    # Return the first character that appears only once\n" +
					"    # Return empty string if no such character exists\n" +
					"    pass\n\n" +
					"# Example:\n" +
					"# first_non_repeating('aabbccd') -> 'd'\n" +
					"# first_non_repeating('aabbcc') -> ''",
			},
		},
	},
	"frontend_developer": {
		ID:                  "frontend_developer",
		Name:                "Frontend Developer",
		Role:                "Frontend Developer",
		Description:         "React/Vue/Angular development with focus on UI/UX and web technologies",
		DefaultNumQuestions: 5,
		DifficultyDistribution: map[string]int{
			"easy": 1, "medium": 3, "hard": 1,
		},
		IncludesCoding:           true,
		CodingLanguages:          []string{"javascript", "typescript"},
		Topics:                   []string{"React", "CSS", "Performance", "Accessibility", "State Management", "Behavioral"},
		EstimatedDurationMinutes: 40,
		QuestionBank: []QuestionTemplate{
			{
				Question:         "Explain the virtual DOM and how it improves performance in React.",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceTechnical,
				Topic:            "React",
				ExpectedKeywords: []string{"diffing", "reconciliation", "batch updates", "real DOM", "performance"},
			},
			{
				Question:         "What is the difference between CSS Grid and Flexbox? When would you use each?",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceTechnical,
				Topic:            "CSS",
				ExpectedKeywords: []string{"one-dimensional", "two-dimensional", "layout", "responsive", "alignment"},
			},
			{
				Question:         "How would you optimize a React application that's rendering slowly?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "Performance",
				ExpectedKeywords: []string{"memo", "useMemo", "useCallback", "virtualization", "lazy loading", "profiler"},
			},
			{
				Question:         "Explain how you would implement accessibility in a web application.",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "Accessibility",
				ExpectedKeywords: []string{"ARIA", "semantic HTML", "keyboard navigation", "screen reader", "contrast"},
			},
			{
				Question:         "Compare different state management solutions. When would you use Redux vs Context API?",
				Difficulty:       models.DifficultyHard,
				Source:           models.SourceTechnical,
				Topic:            "State Management",
				ExpectedKeywords: []string{"global state", "prop drilling", "middleware", "performance", "complexity"},
			},
		},
	},
	"product_manager": {
		ID:                  "product_manager",
		Name:                "Product Manager",
		Role:                "Product Manager",
		Description:         "Product strategy, user research, and stakeholder management",
		DefaultNumQuestions: 5,
		DifficultyDistribution: map[string]int{
			"easy": 1, "medium": 3, "hard": 1,
		},
		Topics:                   []string{"Product Strategy", "User Research", "Metrics", "Prioritization", "Stakeholder Management"},
		EstimatedDurationMinutes: 35,
		QuestionBank: []QuestionTemplate{
			{
				Question:         "How do you prioritize features when you have limited resources?",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceRoleBased,
				Topic:            "Prioritization",
				ExpectedKeywords: []string{"RICE", "MoSCoW", "user value", "effort", "impact", "data-driven"},
			},
			{
				Question:         "Describe your process for understanding user needs and validating product ideas.",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceRoleBased,
				Topic:            "User Research",
				ExpectedKeywords: []string{"interviews", "surveys", "prototypes", "A/B testing", "analytics", "feedback"},
			},
			{
				Question:         "What metrics would you track for a subscription-based product?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceRoleBased,
				Topic:            "Metrics",
				ExpectedKeywords: []string{"MRR", "churn", "LTV", "CAC", "retention", "NPS", "activation"},
			},
			{
				Question:         "How do you handle disagreements with engineering about technical feasibility?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceBehavioral,
				Topic:            "Stakeholder Management",
				ExpectedKeywords: []string{"collaboration", "trade-offs", "communication", "compromise", "data"},
			},
			{
				Question:         "Design a product strategy for entering a new market with established competitors.",
				Difficulty:       models.DifficultyHard,
				Source:           models.SourceRoleBased,
				Topic:            "Product Strategy",
				ExpectedKeywords: []string{"differentiation", "market research", "positioning", "MVP", "go-to-market"},
			},
		},
	},
	"data_scientist": {
		ID:                  "data_scientist",
		Name:                "Data Scientist",
		Role:                "Data Scientist",
		Description:         "Machine learning, statistics, and data analysis",
		DefaultNumQuestions: 5,
		DifficultyDistribution: map[string]int{
			"easy": 1, "medium": 3, "hard": 1,
		},
		IncludesCoding:           true,
		CodingLanguages:          []string{"python"},
		Topics:                   []string{"Machine Learning", "Statistics", "Data Analysis", "Deep Learning", "Problem Solving"},
		EstimatedDurationMinutes: 45,
		QuestionBank: []QuestionTemplate{
			{
				Question:         "Explain the bias-variance tradeoff in machine learning.",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceTechnical,
				Topic:            "Machine Learning",
				ExpectedKeywords: []string{"overfitting", "underfitting", "generalization", "complexity", "regularization"},
			},
			{
				Question:         "How would you handle imbalanced classes in a classification problem?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "Machine Learning",
				ExpectedKeywords: []string{"SMOTE", "undersampling", "class weights", "precision-recall", "F1 score"},
			},
			{
				Question:         "Explain the difference between L1 and L2 regularization.",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "Machine Learning",
				ExpectedKeywords: []string{"Lasso", "Ridge", "sparsity", "feature selection", "penalty"},
			},
			{
				Question:         "How would you design an A/B test to measure the impact of a new feature?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "Statistics",
				ExpectedKeywords: []string{"hypothesis", "sample size", "statistical significance", "control", "p-value"},
			},
			{
				Question:         "Describe the architecture of a transformer model and why it's effective for NLP.",
				Difficulty:       models.DifficultyHard,
				Source:           models.SourceTechnical,
				Topic:            "Deep Learning",
				ExpectedKeywords: []string{"attention", "self-attention", "positional encoding", "parallelization", "BERT", "GPT"},
			},
		},
	},
	"devops_engineer": {
		ID:                  "devops_engineer",
		Name:                "DevOps Engineer",
		Role:                "DevOps Engineer",
		Description:         "CI/CD, infrastructure, and cloud operations",
		DefaultNumQuestions: 5,
		DifficultyDistribution: map[string]int{
			"easy": 1, "medium": 3, "hard": 1,
		},
		IncludesCoding:           true,
		CodingLanguages:          []string{"python"},
		Topics:                   []string{"CI/CD", "Containers", "Cloud", "Monitoring", "Infrastructure as Code"},
		EstimatedDurationMinutes: 40,
		QuestionBank: []QuestionTemplate{
			{
				Question:         "Explain the difference between Docker containers and virtual machines.",
				Difficulty:       models.DifficultyEasy,
				Source:           models.SourceTechnical,
				Topic:            "Containers",
				ExpectedKeywords: []string{"kernel", "isolation", "lightweight", "hypervisor", "image", "portability"},
			},
			{
				Question:         "What is the difference between blue-green and canary deployments?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "CI/CD",
				ExpectedKeywords: []string{"rollback", "traffic", "risk", "gradual", "testing", "production"},
			},
			{
				Question:         "Explain Infrastructure as Code and its benefits. What tools have you used?",
				Difficulty:       models.DifficultyMedium,
				Source:           models.SourceTechnical,
				Topic:            "Infrastructure as Code",
				ExpectedKeywords: []string{"Terraform", "CloudFormation", "version control", "reproducibility", "drift"},
			},
			{
				Question:         "How would you design a monitoring and alerting system for a microservices architecture?",
				Difficulty:       models.DifficultyHard,
				Source:           models.SourceTechnical,
				Topic:            "Monitoring",
				ExpectedKeywords: []string{"Prometheus", "Grafana", "distributed tracing", "logs", "metrics", "SLOs"},
			},
		},
	},
}
