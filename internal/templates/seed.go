package templates

// seedTemplates is the built-in template catalog, in display order.
var seedTemplates = []QuizTemplate{
	{
		ID:            "academic",
		Name:          "Academic Research",
		Description:   "Tests comprehension of research papers, theses and scientific studies",
		DocumentTypes: []string{"research", "academic", "thesis", "dissertation", "study", "scientific", "paper"},
		Icon:          IconGraduationCap,
		PromptModifier: "Focus on the research question, methodology, key findings and their limitations. " +
			"Prefer questions that require interpreting results over recalling isolated facts.",
		QuestionTypes: QuestionTypeDistribution{MultipleChoice: 50, TrueFalse: 20, ShortAnswer: 30},
		FocusAreas:    []string{"Research methodology", "Key findings", "Theoretical framework", "Limitations", "Citations and prior work"},
		ExampleQuestions: []string{
			"What sampling method did the authors use, and why?",
			"Which finding most directly supports the paper's main hypothesis?",
			"True or false: the study controlled for participant age.",
		},
	},
	{
		ID:            "technical",
		Name:          "Technical Documentation",
		Description:   "Checks understanding of manuals, specifications, API references and system guides",
		DocumentTypes: []string{"technical", "manual", "specification", "documentation", "guide", "api", "system", "implementation", "code"},
		Icon:          IconCode,
		PromptModifier: "Focus on procedures, configuration details, interfaces and constraints. " +
			"Ask how components interact and what happens in edge cases.",
		QuestionTypes: QuestionTypeDistribution{MultipleChoice: 60, TrueFalse: 20, ShortAnswer: 20},
		FocusAreas:    []string{"Procedures and steps", "Configuration", "Interfaces and parameters", "Error handling", "Best practices"},
		ExampleQuestions: []string{
			"Which parameter controls the request timeout?",
			"What is the correct order of steps to deploy the service?",
			"True or false: the endpoint returns 404 when the resource is missing.",
		},
	},
	{
		ID:            "business",
		Name:          "Business Analysis",
		Description:   "Covers business plans, reports, proposals and financial or market analyses",
		DocumentTypes: []string{"business", "report", "plan", "proposal", "analysis", "case-study", "financial", "market", "quarterly"},
		Icon:          IconBriefcase,
		PromptModifier: "Focus on strategy, metrics, financial figures, risks and recommendations. " +
			"Ask about the reasoning behind decisions and the evidence for them.",
		QuestionTypes: QuestionTypeDistribution{MultipleChoice: 50, TrueFalse: 25, ShortAnswer: 25},
		FocusAreas:    []string{"Strategy and objectives", "Key metrics", "Financial figures", "Risks", "Recommendations"},
		ExampleQuestions: []string{
			"What was the main driver of revenue growth this quarter?",
			"Which risk does the proposal rank as most severe?",
			"True or false: the plan targets break-even within two years.",
		},
	},
	{
		ID:            "narrative",
		Name:          "Narrative & Literature",
		Description:   "Explores stories, essays and books through plot, character and theme",
		DocumentTypes: []string{"story", "essay", "novel", "chapter", "literature", "book", "narrative"},
		Icon:          IconBookOpen,
		PromptModifier: "Focus on plot, characters, themes, setting and the author's choices. " +
			"Include questions that ask for interpretation supported by the text.",
		QuestionTypes: QuestionTypeDistribution{MultipleChoice: 40, TrueFalse: 20, ShortAnswer: 40},
		FocusAreas:    []string{"Plot", "Characters", "Themes", "Setting", "Literary devices"},
		ExampleQuestions: []string{
			"What motivates the protagonist to leave home?",
			"Which theme is reinforced by the final chapter?",
			"True or false: the story is told from a single point of view.",
		},
	},
	{
		ID:            FallbackID,
		Name:          "General Knowledge",
		Description:   "A balanced quiz that works for any kind of document",
		DocumentTypes: []string{"general", "document", "notes"},
		Icon:          IconSparkles,
		PromptModifier: "Cover the most important facts and ideas in the document evenly. " +
			"Mix recall and understanding questions.",
		QuestionTypes: QuestionTypeDistribution{MultipleChoice: 60, TrueFalse: 20, ShortAnswer: 20},
		FocusAreas:    []string{"Main ideas", "Key facts", "Definitions", "Relationships between concepts"},
		ExampleQuestions: []string{
			"What is the main idea of the document?",
			"Which statement best summarises the second section?",
			"True or false: the document defines the term before using it.",
		},
	},
}
