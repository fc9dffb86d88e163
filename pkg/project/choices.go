package project

// Choice is one selectable answer
type Choice struct {
	Value       string
	Title       string
	Description string
}

// Architectures
const (
	Monolith      = "monolith"
	Microservices = "microservices"
)

// Project types
const (
	BackendOnly = "backend-only"
	Fullstack   = "fullstack"
)

// Backend types
const (
	BackendBasic        = "basic"
	BackendWithAuth     = "with-auth"
	BackendWithDatabase = "with-database"
)

// ArchitectureChoices lists the supported architectures
var ArchitectureChoices = []Choice{
	{Value: Monolith, Title: "Monolith", Description: "Single application architecture"},
	{Value: Microservices, Title: "Microservices", Description: "Distributed services architecture"},
}

var projectTypeChoices = map[string][]Choice{
	Monolith: {
		{Value: BackendOnly, Title: "Backend Only", Description: "API server only"},
		{Value: Fullstack, Title: "Full-stack", Description: "Backend + Frontend in mono-repo"},
	},
	Microservices: {
		{Value: BackendOnly, Title: "Backend Only", Description: "Multiple API services"},
		{Value: Fullstack, Title: "Full-stack", Description: "Services + Frontend in mono-repo"},
	},
}

// BackendTypeChoices lists the backend flavors
var BackendTypeChoices = []Choice{
	{Value: BackendBasic, Title: "Basic", Description: "Simple Fastify server"},
	{Value: BackendWithAuth, Title: "With Authentication", Description: "JWT auth included"},
	{Value: BackendWithDatabase, Title: "With Database", Description: "Database setup included"},
}

var templateChoices = map[string]map[string][]Choice{
	Monolith: {
		BackendOnly: {
			{Value: "basic", Title: "Basic", Description: "Simple Fastify server"},
		},
		Fullstack: {
			{Value: "vite-react", Title: "Vite + React", Description: "React + Vite frontend"},
			{Value: "react-monorepo", Title: "React monorepo", Description: "React frontend in an npm workspace"},
			{Value: "vue-monorepo", Title: "Vue monorepo", Description: "Vue frontend in an npm workspace"},
		},
	},
	Microservices: {
		BackendOnly: {
			{Value: "basic", Title: "Basic", Description: "Simple Fastify services"},
			{Value: "with-docker", Title: "With Docker", Description: "Services wired with docker compose"},
		},
		Fullstack: {
			{Value: "vite-react", Title: "Vite + React", Description: "React + Vite frontend"},
			{Value: "react-monorepo", Title: "React monorepo", Description: "React frontend in an npm workspace"},
		},
	},
}

// DatabaseChoices lists the databases offered for with-database backends
var DatabaseChoices = []Choice{
	{Value: "postgresql", Title: "PostgreSQL"},
	{Value: "mysql", Title: "MySQL"},
	{Value: "sqlite", Title: "SQLite"},
	{Value: "mongodb", Title: "MongoDB"},
}

// ProjectTypeChoices lists project types for an architecture
func ProjectTypeChoices(architecture string) []Choice {
	return projectTypeChoices[architecture]
}

// TemplateChoices lists the bundled templates for a layout
func TemplateChoices(architecture, projectType string) []Choice {
	return templateChoices[architecture][projectType]
}

// Values extracts the choice values in order
func Values(choices []Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Value
	}
	return out
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
