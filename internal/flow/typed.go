package flow

import "context"

type ArchitectureOverviewInput struct {
	CodebaseContent string `json:"codebaseContent" yaml:"codebaseContent"`
}

type ArchitectureOverviewOutput struct {
	ArchitectureOverview string `json:"architectureOverview"`
}

type ModuleReadmeInput struct {
	ModuleName string `json:"moduleName" yaml:"moduleName"`
	ModuleCode string `json:"moduleCode" yaml:"moduleCode"`
	RepoName   string `json:"repoName" yaml:"repoName"`
}

type ModuleReadmeOutput struct {
	ReadmeContent string `json:"readmeContent"`
}

type SemanticSearchInput struct {
	Query     string   `json:"query" yaml:"query"`
	Documents []string `json:"documents" yaml:"documents"`
}

type SemanticSearchOutput struct {
	Results []string `json:"results"`
}

type PRDocumentationDeltaInput struct {
	CodeChanges           string  `json:"codeChanges" yaml:"codeChanges"`
	ExistingDocumentation *string `json:"existingDocumentation,omitempty" yaml:"existingDocumentation,omitempty"`
}

type PRDocumentationDeltaOutput struct {
	SuggestedDocumentationChanges string `json:"suggestedDocumentationChanges"`
}

func (o *Orchestrator) ArchitectureOverview(ctx context.Context, in ArchitectureOverviewInput) (*ArchitectureOverviewOutput, error) {
	res, err := o.Run(ctx, ArchitectureOverviewFlow, map[string]any{
		"codebaseContent": in.CodebaseContent,
	})
	if err != nil {
		return nil, err
	}
	return &ArchitectureOverviewOutput{ArchitectureOverview: res.Output.String("architectureOverview")}, nil
}

func (o *Orchestrator) ModuleReadme(ctx context.Context, in ModuleReadmeInput) (*ModuleReadmeOutput, error) {
	res, err := o.Run(ctx, ModuleReadmeFlow, map[string]any{
		"moduleName": in.ModuleName,
		"moduleCode": in.ModuleCode,
		"repoName":   in.RepoName,
	})
	if err != nil {
		return nil, err
	}
	return &ModuleReadmeOutput{ReadmeContent: res.Output.String("readmeContent")}, nil
}

func (o *Orchestrator) SemanticSearch(ctx context.Context, in SemanticSearchInput) (*SemanticSearchOutput, error) {
	documents := in.Documents
	if documents == nil {
		documents = []string{}
	}
	res, err := o.Run(ctx, SemanticSearchFlow, map[string]any{
		"query":     in.Query,
		"documents": documents,
	})
	if err != nil {
		return nil, err
	}
	return &SemanticSearchOutput{Results: res.Output.Strings("results")}, nil
}

func (o *Orchestrator) PRDocumentationDelta(ctx context.Context, in PRDocumentationDeltaInput) (*PRDocumentationDeltaOutput, error) {
	raw := map[string]any{"codeChanges": in.CodeChanges}
	if in.ExistingDocumentation != nil {
		raw["existingDocumentation"] = *in.ExistingDocumentation
	}
	res, err := o.Run(ctx, PRDocumentationDeltaFlow, raw)
	if err != nil {
		return nil, err
	}
	return &PRDocumentationDeltaOutput{
		SuggestedDocumentationChanges: res.Output.String("suggestedDocumentationChanges"),
	}, nil
}
