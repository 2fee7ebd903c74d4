package flow

import (
	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

const (
	NameArchitectureOverview = "architecture-overview"
	NameModuleReadme         = "module-readme"
	NameSemanticSearch       = "semantic-search"
	NamePRDocumentationDelta = "pr-documentation-delta"
)

var ArchitectureOverviewFlow = NewDefinition(
	NameArchitectureOverview,
	"Generate a high-level architecture overview of a codebase.",
	schema.New("ArchitectureOverviewInput", "",
		schema.Text("codebaseContent", "The content of the codebase to generate an architecture overview for."),
	),
	schema.New("ArchitectureOverviewOutput", "High-level architecture overview.",
		schema.Text("architectureOverview", "A high-level architecture overview of the codebase."),
	),
	`You are an expert software architect. Please analyze the following codebase content and generate a high-level architecture overview, explaining the main components, their relationships, and the overall structure.  Focus on clarity and conciseness, so a developer new to the project can quickly understand it.

Codebase Content:
{{{codebaseContent}}}`,
	nil,
)

var ModuleReadmeFlow = NewDefinition(
	NameModuleReadme,
	"Generate a README for a single module of a repository.",
	schema.New("ModuleReadmeInput", "",
		schema.Text("moduleName", "The name of the module."),
		schema.Text("moduleCode", "The code of the module."),
		schema.Text("repoName", "The name of the repository the module belongs to."),
	),
	schema.New("ModuleReadmeOutput", "Generated module README.",
		schema.Text("readmeContent", "The generated README content for the module."),
	),
	`You are an expert documentation writer, tasked with generating a module-level README file for a given module of code.

The README should include a clear description of the module's purpose, its main functions and classes, and how to use it.
Include code examples where appropriate.
The README should be written in Markdown format.
The repository name is {{{repoName}}}.

Here is the module code:
`+"```typescript"+`
{{{moduleCode}}}
`+"```"+`

Module Name: {{{moduleName}}}
`,
	llm.SafetySettings{
		llm.HarmCategoryDangerousContent: llm.ThresholdBlockOnlyHigh,
		llm.HarmCategoryHarassment:       llm.ThresholdBlockMediumAndAbove,
	},
)

var SemanticSearchFlow = NewDefinition(
	NameSemanticSearch,
	"Find the documents most relevant to a natural language query.",
	schema.New("SemanticSearchInput", "",
		schema.Text("query", "The natural language query to search with."),
		schema.TextList("documents", "The list of documents to search over."),
	),
	schema.New("SemanticSearchOutput", "Relevant documents.",
		schema.TextList("results", "The list of relevant documents based on the query."),
	),
	`You are a search assistant helping users find relevant information in their codebase and documentation.

Given the following query:
{{query}}

Search within the following documents and identify the most relevant ones:{{#each documents}}
- {{{this}}}{{/each}}

Return a list of the most relevant documents.
`,
	nil,
)

var PRDocumentationDeltaFlow = NewDefinition(
	NamePRDocumentationDelta,
	"Suggest documentation changes for the code changes in a pull request.",
	schema.New("PRDocumentationDeltaInput", "",
		schema.Text("codeChanges", "The code changes in the pull request."),
		schema.Text("existingDocumentation", "The existing documentation.").Optional(),
	),
	schema.New("PRDocumentationDeltaOutput", "Suggested documentation changes.",
		schema.Text("suggestedDocumentationChanges", "The suggested documentation changes based on the code changes."),
	),
	`You are an AI documentation assistant. Given the following code changes and existing documentation, generate suggested documentation changes.

Code Changes:
{{{codeChanges}}}

Existing Documentation:
{{{existingDocumentation}}}

Suggested Documentation Changes:
`,
	nil,
)
