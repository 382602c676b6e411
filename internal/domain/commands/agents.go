package commands

import (
	"fmt"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// Agent names of the repository review team.
const (
	NavigatorName = "Navigator"
	AnalystName   = "Analyst"
)

// NewNavigatorAgent explores the file tree and points the analyst at the core files.
func NewNavigatorAgent(repositoryID string) entities.Agent {
	return entities.Agent{
		Name: NavigatorName,
		SystemMessage: fmt.Sprintf(`You are a Repository Navigator.
1. Start by listing files in '%[1]s' using `+"`%[2]s`"+` (repository_id is '%[1]s').
2. Identify the core logic files (look for main.go, main.py, app.py, cmd/, src/, internal/ or lib/).
3. Tell the Analyst specifically which 1-2 files to read and why.`,
			repositoryID, ToolListDirectory,
		),
	}
}

// NewAnalystAgent reads the selected files, reviews them and saves the report.
func NewAnalystAgent(repositoryID, reportName, terminationPhrase string) entities.Agent {
	return entities.Agent{
		Name: AnalystName,
		SystemMessage: fmt.Sprintf(`You are a Senior Code Reviewer.
1. Read the files identified by the Navigator using `+"`%[2]s`"+` (repository_id is '%[1]s').
2. Critically analyze the code for:
   - Logic bugs
   - Security risks (hardcoded keys, injection flaws)
   - Performance issues
3. Construct a detailed Markdown report.
4. Call `+"`%[3]s`"+` to save it as %[4]s.
5. AFTER saving, say "%[5]s".`,
			repositoryID, ToolReadFile, ToolSaveReport, reportName, terminationPhrase,
		),
	}
}
