// Package test holds fixture TOML documents shared by the toml package's own test files.
package test

// Case is one fixture document, paired with whether it is expected to parse successfully.
type Case struct {
	Name  string
	Input string
	Valid bool
}

// ScenarioCases covers a set of concrete, representative documents: tables, dotted keys, integer
// width promotion, special floats, arrays of tables, and the space-separated date-time form.
var ScenarioCases = []Case{
	{
		Name:  "simple table",
		Input: "[dataSource]\npooled = true\nusername = \"sa\"\nsomething = [1, 2]\n",
		Valid: true,
	},
	{
		Name:  "implicit table defined later",
		Input: "[a.b]\nx = 1\n[a]\ny = 2\n",
		Valid: true,
	},
	{
		Name:  "table redefined",
		Input: "[a]\n[a]\n",
		Valid: false,
	},
	{
		Name:  "hex underscore width promotion",
		Input: "k = 0xFF_FF\n",
		Valid: true,
	},
	{
		Name:  "hex arbitrary precision",
		Input: "k = 0xFFFFFFFFFFFFFFFF_F\n",
		Valid: true,
	},
	{
		Name:  "special floats",
		Input: "k = inf\nj = -inf\nn = nan\n",
		Valid: true,
	},
	{
		Name:  "array of tables",
		Input: "[[servers]]\nname = \"a\"\n[[servers]]\nname = \"b\"\n",
		Valid: true,
	},
	{
		Name:  "trailing comma in inline table",
		Input: "t = { a = 1, }\n",
		Valid: false,
	},
	{
		Name:  "space-separated date-time",
		Input: "d = 1979-05-27 07:32:00Z\n",
		Valid: true,
	},
}

// InvalidCases covers additional lexical/structural/semantic failures not already in ScenarioCases.
var InvalidCases = []Case{
	{Name: "unterminated string", Input: "k = \"abc\n"},
	{Name: "duplicate key", Input: "k = 1\nk = 2\n"},
	{Name: "path into scalar", Input: "k = 1\n[k.b]\n"},
	{Name: "closed inline table extended", Input: "t = { a = 1 }\n[t.b]\n"},
	{Name: "unclosed array", Input: "k = [1, 2\n"},
	{Name: "dotted key path into scalar", Input: "a = 1\na.b = 2\n"},
}
