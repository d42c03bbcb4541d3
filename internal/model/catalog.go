package model

// FileTypeGroup is a named set of well-known file extensions.
type FileTypeGroup struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// FileTypeCatalog is the grouped table of extensions offered by the
// interactive wizard and the types command. Extensions are stored
// normalized, without the leading dot.
type FileTypeCatalog struct {
	Groups []FileTypeGroup `json:"groups"`
}

// DefaultFileTypeCatalog returns the built-in catalog. Each call returns
// a fresh copy so callers cannot mutate shared state.
func DefaultFileTypeCatalog() FileTypeCatalog {
	groups := []FileTypeGroup{
		{
			Name: "Programming Languages",
			Extensions: []string{
				"py", "js", "ts", "java", "go", "rb", "php", "cpp", "c",
				"cs", "swift", "kt", "rs", "scala", "sh", "pl", "lua",
			},
		},
		{
			Name:       "Markup & Styles",
			Extensions: []string{"html", "htm", "css", "scss", "md", "rst", "xml"},
		},
		{
			Name: "Data & Config",
			Extensions: []string{
				"json", "yaml", "yml", "toml", "ini", "config", "conf",
				"properties", "env",
			},
		},
		{
			Name:       "Build & Package",
			Extensions: []string{"gradle", "pom", "lock", "dockerfile", "makefile", "cmake"},
		},
		{
			Name:       "Scripts & Misc",
			Extensions: []string{"bat", "ps1", "sql", "ipynb", "tex"},
		},
	}

	out := FileTypeCatalog{Groups: make([]FileTypeGroup, len(groups))}
	for i, g := range groups {
		exts := make([]string, len(g.Extensions))
		copy(exts, g.Extensions)
		out.Groups[i] = FileTypeGroup{Name: g.Name, Extensions: exts}
	}

	return out
}

// Extensions returns every extension in the catalog, flattened in
// group order.
func (c FileTypeCatalog) Extensions() []string {
	var all []string
	for _, g := range c.Groups {
		all = append(all, g.Extensions...)
	}

	return all
}

// Contains reports whether ext (with or without a leading dot) is a
// known catalog extension.
func (c FileTypeCatalog) Contains(ext string) bool {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}

	for _, g := range c.Groups {
		for _, e := range g.Extensions {
			if e == ext {
				return true
			}
		}
	}

	return false
}
