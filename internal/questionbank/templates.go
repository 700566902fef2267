package questionbank

// templateQuestions is the curated question library used when AI generation
// is unavailable, keyed by focus area then difficulty.
var templateQuestions = map[string]map[string][]string{
	"communication": {
		"easy": {
			"Can you tell me about yourself?",
			"What are your strengths and weaknesses?",
			"Why are you interested in this position?",
			"Where do you see yourself in 5 years?",
			"Describe a challenging situation you faced at work.",
		},
		"medium": {
			"How do you handle constructive criticism?",
			"Tell me about a time you had to explain a complex concept to someone.",
			"How do you prioritize your work when you have multiple deadlines?",
			"Describe a situation where you had to work with a difficult colleague.",
			"How do you stay motivated during challenging projects?",
		},
		"hard": {
			"How would you handle a situation where your manager disagrees with your approach?",
			"Describe a time when you had to influence stakeholders without direct authority.",
			"How do you handle situations where you need to deliver bad news?",
			"Tell me about a time you had to resolve a conflict between team members.",
			"How do you ensure effective communication in a remote team setting?",
		},
	},
	"technical": {
		"easy": {
			"What programming languages are you most comfortable with?",
			"Can you explain the difference between frontend and backend development?",
			"What is version control and why is it important?",
			"Describe a simple project you've worked on.",
			"What tools do you use for debugging?",
		},
		"medium": {
			"Explain the concept of RESTful APIs.",
			"How would you optimize a slow-performing database query?",
			"Describe your experience with testing methodologies.",
			"How do you handle security in your applications?",
			"Explain the difference between synchronous and asynchronous operations.",
		},
		"hard": {
			"How would you design a scalable microservices architecture?",
			"Explain how you would implement a caching strategy for a high-traffic application.",
			"Describe your approach to handling distributed system failures.",
			"How would you design a system to handle millions of concurrent users?",
			"Explain your strategy for database sharding and partitioning.",
		},
	},
	"overall": {
		"easy": {
			"What motivates you in your work?",
			"How do you handle stress and pressure?",
			"What do you do to stay updated with industry trends?",
			"How do you approach learning new technologies?",
			"What's your preferred work environment?",
		},
		"medium": {
			"How do you balance quality with speed in your work?",
			"Describe your ideal team dynamic.",
			"How do you handle ambiguity in project requirements?",
			"What's your approach to mentoring junior developers?",
			"How do you measure success in your projects?",
		},
		"hard": {
			"How would you lead a team through a major technical transition?",
			"Describe your strategy for managing technical debt.",
			"How do you approach making architectural decisions?",
			"What's your philosophy on code quality vs. delivery speed?",
			"How would you handle a situation where business requirements conflict with technical best practices?",
		},
	},
}

// fallbackQuestions are role-agnostic questions used as the last resort when
// the template library cannot fill the requested count.
var fallbackQuestions = []string{
	"Tell me about your experience related to this role.",
	"What challenges do you anticipate in this position?",
	"How do you typically approach problem-solving?",
	"What are your long-term career aspirations?",
	"How do you respond to constructive feedback?",
}
