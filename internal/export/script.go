package export

import (
	"fmt"
	"io"

	"github.com/gitspread/gitspread/internal/plan"
)

// envDateFormat is the date layout git expects in GIT_AUTHOR_DATE.
const envDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// ScriptExporter emits a bash script that rewrites author and committer
// dates with git filter-branch, one env-filter block per repository. The
// script is the external rewriter; this tool never runs it.
type ScriptExporter struct{}

func (e *ScriptExporter) Ext() string { return ".sh" }

func (e *ScriptExporter) Export(a *plan.Assignment, w io.Writer) error {
	var repos []string
	byRepo := make(map[string][]plan.Entry)
	for _, entry := range a.Entries {
		if _, seen := byRepo[entry.Repo]; !seen {
			repos = append(repos, entry.Repo)
		}
		byRepo[entry.Repo] = append(byRepo[entry.Repo], entry)
	}

	if _, err := fmt.Fprint(w, "#!/bin/bash\n\nset -e\n\n"); err != nil {
		return err
	}

	for _, repo := range repos {
		fmt.Fprintf(w, "echo \"Processing %s...\"\n", repo)
		fmt.Fprintf(w, "cd %q\n\n", repo)
		fmt.Fprint(w, "export FILTER_BRANCH_SQUELCH_WARNING=1\n\n")
		fmt.Fprint(w, "git filter-branch -f --env-filter '\n")
		for _, entry := range byRepo[repo] {
			date := entry.New.Format(envDateFormat)
			fmt.Fprintf(w, "if [ \"$GIT_COMMIT\" = \"%s\" ]; then\n", entry.Hash)
			fmt.Fprintf(w, "    export GIT_AUTHOR_DATE=\"%s\"\n", date)
			fmt.Fprintf(w, "    export GIT_COMMITTER_DATE=\"%s\"\n", date)
			fmt.Fprint(w, "fi\n")
		}
		fmt.Fprint(w, "' --all\n\n")
		fmt.Fprint(w, "echo \"done\"\n\n")
	}
	return nil
}
