package theme

// Built-in themes share one CSS skeleton with a color palette swapped in.
// The layout rules (sidebar, breadcrumbs, alerts) are identical across themes
// so page markup stays theme-agnostic.

const layoutCSS = `
body { margin: 0; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; line-height: 1.6; color: var(--fg); background: var(--bg); }
.page { display: flex; min-height: 100vh; }
.sidebar { width: 280px; flex-shrink: 0; padding: 1rem; background: var(--panel); border-right: 1px solid var(--border); overflow-y: auto; }
.sidebar details { margin: 0.15rem 0; }
.sidebar summary { cursor: pointer; font-weight: 600; }
.sidebar a { display: block; padding: 0.15rem 0.5rem; color: var(--link); text-decoration: none; border-radius: 4px; }
.sidebar a.current { background: var(--accent); color: var(--accent-fg); }
.content { flex: 1; padding: 1.5rem 2.5rem; max-width: 56rem; }
.breadcrumbs { font-size: 0.85rem; margin-bottom: 1rem; color: var(--muted); }
.breadcrumbs a { color: var(--link); text-decoration: none; }
.breadcrumbs .crumb-current { font-weight: 600; }
.section-toc { list-style: none; padding-left: 0; }
.section-toc li { margin: 0.4rem 0; }
.section-toc a { color: var(--link); }
.alert { display: flex; gap: 0.5rem; padding: 0.75rem 1rem; margin: 1rem 0; border-radius: 6px; border: 1px solid var(--border); }
.alert-info { background: var(--info-bg); }
.alert-primary { background: var(--accent-bg); }
.alert-warning { background: var(--warn-bg); }
.alert-danger { background: var(--danger-bg); }
.alert-success { background: var(--success-bg); }
.alert-light { background: var(--panel); }
.alert-dark { background: var(--fg); color: var(--bg); }
code { background: var(--panel); padding: 0.1rem 0.3rem; border-radius: 3px; }
pre { background: var(--panel); padding: 1rem; border-radius: 6px; overflow-x: auto; }
img { max-width: 100%; }
`

type builtinTheme struct {
	name    string
	palette string
}

func (t *builtinTheme) Name() string { return t.name }

func (t *builtinTheme) Stylesheet() ([]byte, error) {
	return []byte(":root {" + t.palette + "}\n" + layoutCSS), nil
}

func init() {
	Register(&builtinTheme{name: "default", palette: `
--fg: #1d2129; --bg: #ffffff; --panel: #f5f6f7; --border: #d9dde1;
--link: #0b5fff; --muted: #6b7280; --accent: #0b5fff; --accent-fg: #ffffff;
--accent-bg: #e7efff; --info-bg: #e8f4fd; --warn-bg: #fff7e0; --danger-bg: #fdecea; --success-bg: #e9f7ef;`})

	Register(&builtinTheme{name: "slate", palette: `
--fg: #e5e7eb; --bg: #111827; --panel: #1f2937; --border: #374151;
--link: #7aa2ff; --muted: #9ca3af; --accent: #7aa2ff; --accent-fg: #111827;
--accent-bg: #1e2a4a; --info-bg: #15283c; --warn-bg: #3a2f12; --danger-bg: #3b1a1a; --success-bg: #12301f;`})

	Register(&builtinTheme{name: "paper", palette: `
--fg: #3b3631; --bg: #faf6ef; --panel: #f1ebdf; --border: #ddd3c0;
--link: #8a5a2b; --muted: #8c8577; --accent: #8a5a2b; --accent-fg: #faf6ef;
--accent-bg: #efe3d0; --info-bg: #eee8fa; --warn-bg: #f7ecd0; --danger-bg: #f6ddd6; --success-bg: #e4eedb;`})
}
