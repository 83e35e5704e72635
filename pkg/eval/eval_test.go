package eval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/amps/pkg/env"
	"github.com/walteh/amps/pkg/eval"
	"github.com/walteh/amps/pkg/scan"
)

func render(t *testing.T, template string, environment env.Environment) *eval.Result {
	t.Helper()
	return eval.Run(context.Background(), scan.Scan(template), environment)
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name     string
		template string
		env      env.Environment
		want     string
		diags    []string
	}{
		{
			name:     "plain_text",
			template: "Hello, world!",
			want:     "Hello, world!",
		},
		{
			name:     "precedence",
			template: "{= 1 + 2 * 3 =}",
			want:     "7",
		},
		{
			name:     "if_else",
			template: "{% if 1 lt 2 %}yes{% else %}no{% endif %}",
			want:     "yes",
		},
		{
			name:     "elif_chain",
			template: "{% if 5 eq 6 %}a{% elif 5 eq 5 %}b{% else %}c{% endif %}",
			want:     "b",
		},
		{
			name:     "string_concat",
			template: `{= "foo" + "bar" =}`,
			want:     "foobar",
		},
		{
			name:     "division_by_zero",
			template: "{= 10 / 0 =}",
			want:     "",
			diags:    []string{"10 / 0 division by 0"},
		},
		{
			name:     "text_variable",
			template: "Hi {= name =}!",
			env:      env.Environment{"name": env.Text("Ada")},
			want:     "Hi Ada!",
		},
		{
			name:     "map_lookup",
			template: `{= m["k"] =}`,
			env:      env.Environment{"m": env.TextMap{"k": "v"}},
			want:     "v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.template, tt.env)
			assert.Equal(t, tt.want, got.Output)
			if len(tt.diags) == 0 {
				assert.Empty(t, got.Diagnostics.Messages())
				return
			}
			assert.Equal(t, tt.diags, got.Diagnostics.Messages())
		})
	}
}

func TestExpressions(t *testing.T) {
	environment := env.Environment{
		"n":    env.Number(10),
		"name": env.Text("Ada"),
		"v":    env.TextVector{"a", "b", "c"},
		"nums": env.NumberVector{4, 5, 6},
		"ages": env.NumberMap{"ada": 36},
		"m":    env.TextMap{"k": "v"},
	}

	tests := []struct {
		name     string
		template string
		want     string
		diags    []string
	}{
		{name: "left_assoc_minus", template: "{= 7 - 2 - 1 =}", want: "4"},
		{name: "left_assoc_div", template: "{= 100 / 10 / 5 =}", want: "2"},
		{name: "parens", template: "{= 2 * (3 + 4) =}", want: "14"},
		{name: "remainder", template: "{= 7 % 3 =}", want: "1"},
		{name: "negative_remainder", template: "{= - 7 % 3 =}", want: "-1"},
		{name: "double_negation", template: "{= - - 3 =}", want: "3"},
		{name: "not_bool", template: "{= not true =}", want: "false"},
		{name: "not_not", template: "{= not not false =}", want: "false"},
		{name: "not_number_complements", template: "{= not 0 =}", want: "-1"},
		{name: "compare_numbers", template: "{= 1 lt 2 =}", want: "true"},
		{name: "compare_text", template: `{= "abc" ge "abd" =}`, want: "false"},
		{name: "text_equality", template: `{= name eq "Ada" =}`, want: "true"},
		{name: "bool_ne", template: "{= true ne false =}", want: "true"},
		{name: "logical", template: "{= true and false or true =}", want: "true"},
		{name: "comparisons_inside_logical", template: "{= 1 lt 2 and 2 lt 3 =}", want: "true"},
		{
			name:     "equality_binds_looser_than_logical",
			template: "{= false and true eq false and true =}",
			want:     "true",
		},
		{name: "variable_arithmetic", template: "{= n * n + 1 =}", want: "101"},
		{name: "vector_index", template: "{= v[1] =}", want: "b"},
		{name: "number_vector_index", template: "{= nums[2] + 1 =}", want: "7"},
		{name: "number_map", template: `{= ages["ada"] =}`, want: "36"},
		{name: "index_by_expression_value", template: "{= v[(1)] =}", want: "b"},
		{name: "min_int", template: "{= - 9223372036854775807 - 1 =}", want: "-9223372036854775808"},
		{
			name:     "type_mismatch",
			template: `{= 1 + "a" =}`,
			diags:    []string{"mismatch types number(1) + text(a)"},
		},
		{
			name:     "bool_arithmetic",
			template: "{= true + true =}",
			diags:    []string{"operator + invalid for booleans"},
		},
		{
			name:     "text_minus",
			template: `{= "a" - "b" =}`,
			diags:    []string{"operator - invalid for text"},
		},
		{
			name:     "number_and",
			template: "{= 1 and 2 =}",
			diags:    []string{"operator and invalid for numbers"},
		},
		{
			name:     "negate_text",
			template: `{= - "a" =}`,
			diags:    []string{"invalid -text(a)"},
		},
		{
			name:     "not_text",
			template: `{= not "a" =}`,
			diags:    []string{"invalid not text(a)"},
		},
		{
			name:     "add_overflow",
			template: "{= 9223372036854775807 + 1 =}",
			diags:    []string{"9223372036854775807 + 1 overflows"},
		},
		{
			name:     "sub_underflow",
			template: "{= 0 - 9223372036854775807 - 2 =}",
			diags:    []string{"-9223372036854775807 - 2 underflows"},
		},
		{
			name:     "mul_overflow",
			template: "{= 4611686018427387904 * 2 =}",
			diags:    []string{"4611686018427387904 * 2 overflows"},
		},
		{
			name:     "remainder_by_zero",
			template: "{= 5 % 0 =}",
			diags:    []string{"5 % 0 division by 0"},
		},
		{
			name:     "literal_too_large",
			template: "{= 9223372036854775808 =}",
			diags:    []string{"number 9223372036854775808 overflows"},
		},
		{
			name:     "unknown_identifier",
			template: "{= x =}",
			diags:    []string{"invalid identifier x"},
		},
		{
			name:     "unknown_identifier_in_sum",
			template: "{= x + 1 =}",
			diags:    []string{"invalid identifier x", "mismatch types text(<null>) + number(1)"},
		},
		{
			name:     "vector_without_index",
			template: "{= v =}",
			diags:    []string{"complex variable, must be parsed"},
		},
		{
			name:     "vector_out_of_range",
			template: "{= v[3] =}",
			diags:    []string{"invalid id v[3]"},
		},
		{
			name:     "missing_key",
			template: `{= m["x"] =}`,
			diags:    []string{`invalid id m["x"]`},
		},
		{
			name:     "bool_index",
			template: "{= v[true] =}",
			diags:    []string{"invalid id"},
		},
		{
			name:     "scalar_indexed",
			template: "{= name[0] =}",
			diags:    []string{"name is a Text and cannot be indexed by number"},
		},
		{
			name:     "vector_by_key",
			template: `{= v["a"] =}`,
			diags:    []string{"v is a TextVector and cannot be indexed by text"},
		},
		{
			name:     "missing_bracket",
			template: "{= v[0 =}",
			want:     "a",
			diags:    []string{"missing closing ]"},
		},
		{
			name:     "missing_paren",
			template: "{% print (1 + 2 %}",
			want:     "3",
			diags:    []string{"missing closing )"},
		},
		{
			name:     "dangling_operator",
			template: "{= 1 + =}",
			diags:    []string{"unexpected end of expression", "mismatch types text(<null>) + number(1)"},
		},
		{
			name:     "leading_operator",
			template: "{% print * 2 %}",
			want:     "",
			diags:    []string{`unexpected token STAR("*")`, `unexpected token NUMBER("2")`},
		},
		{
			name:     "trailing_tokens",
			template: "{% print 1 2 %}",
			want:     "1",
			diags:    []string{`unexpected token NUMBER("2")`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.template, environment)
			assert.Equal(t, tt.want, got.Output)
			if len(tt.diags) == 0 {
				assert.Empty(t, got.Diagnostics.Messages())
				return
			}
			assert.Equal(t, tt.diags, got.Diagnostics.Messages())
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
		diags    []string
	}{
		{
			name:     "print_statement",
			template: `{% print "x" + "y" %}`,
			want:     "xy",
		},
		{
			name:     "taken_if_suppresses_elif_and_else",
			template: "{% if true %}a{% elif true %}b{% else %}c{% endif %}",
			want:     "a",
		},
		{
			name:     "no_arm_taken",
			template: "{% if false %}a{% elif false %}b{% endif %}",
			want:     "",
		},
		{
			name:     "else_taken",
			template: "{% if false %}a{% elif false %}b{% else %}c{% endif %}",
			want:     "c",
		},
		{
			name:     "nested",
			template: "{% if true %}{% if false %}x{% else %}y{% endif %}{% endif %}",
			want:     "y",
		},
		{
			name:     "nested_inside_suppressed",
			template: "{% if false %}{% if true %}x{% elif true %}q{% else %}y{% endif %}z{% else %}w{% endif %}",
			want:     "w",
		},
		{
			name:     "text_around_branches",
			template: "<{% if 2 gt 1 %}in{% endif %}>",
			want:     "<in>",
		},
		{
			name:     "suppressed_print_still_diagnoses",
			template: "{% if false %}{= 1 / 0 =}{% endif %}",
			want:     "",
			diags:    []string{"1 / 0 division by 0"},
		},
		{
			name:     "non_bool_guard",
			template: "{% if 1 %}a{% else %}b{% endif %}",
			want:     "b",
			diags:    []string{"if expression must evaluate to boolean"},
		},
		{
			name:     "guard_without_value",
			template: "{% if x %}a{% endif %}",
			want:     "",
			diags:    []string{"invalid identifier x", "if expression cannot be evaluated"},
		},
		{
			name:     "stray_endif",
			template: "a{% endif %}b",
			want:     "ab",
			diags:    []string{"mismatch endif"},
		},
		{
			name:     "stray_else",
			template: "{% else %}b",
			want:     "b",
			diags:    []string{"mismatch else"},
		},
		{
			name:     "stray_elif",
			template: "{% elif true %}b",
			want:     "b",
			diags:    []string{"mismatch elif"},
		},
		{
			name:     "elif_after_else",
			template: "{% if false %}a{% else %}b{% elif true %}c{% endif %}",
			want:     "bc",
			diags:    []string{"mismatch elif"},
		},
		{
			name:     "unclosed_if",
			template: "{% if true %}a",
			want:     "a",
			diags:    []string{"missing endif"},
		},
		{
			name:     "else_with_expression",
			template: "{% if false %}a{% else true %}b{% endif %}",
			want:     "b",
			diags:    []string{`unexpected token TRUE("true")`},
		},
		{
			name:     "reserved_loop",
			template: "{% for x in v %}",
			diags:    []string{"unsupported statement for"},
		},
		{
			name:     "unknown_statement",
			template: "{% foo %}",
			diags:    []string{`unexpected token IDENTIFIER("foo")`},
		},
		{
			name:     "illegal_character_truncates_silently",
			template: "{% print 1 + 2.5 %}",
			want:     "3",
		},
		{
			name:     "newlines_preserved",
			template: "line1\n{% if true %}\nyes\n{% endif %}\n",
			want:     "line1\n\nyes\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.template, env.Environment{"v": env.TextVector{"a"}})
			assert.Equal(t, tt.want, got.Output)
			if len(tt.diags) == 0 {
				assert.Empty(t, got.Diagnostics.Messages())
				return
			}
			assert.Equal(t, tt.diags, got.Diagnostics.Messages())
		})
	}
}

func TestDiagnosticsCarryLines(t *testing.T) {
	got := render(t, "ok\n{= 1 / 0 =}\n{% if true %}", nil)
	require.Len(t, got.Diagnostics, 2)
	assert.Equal(t, 2, got.Diagnostics[0].Line)
	assert.Equal(t, "line 2: 1 / 0 division by 0", got.Diagnostics[0].Detail())
	assert.Equal(t, 3, got.Diagnostics[1].Line)
	assert.Equal(t, "missing endif", got.Diagnostics[1].Message)
}

func TestIndexingRoundTrip(t *testing.T) {
	environment := env.Environment{"v": env.TextVector{"a", "b", "c"}}
	for i, want := range []string{"a", "b", "c"} {
		got := render(t, "{= v["+string(rune('0'+i))+"] =}", environment)
		assert.Equal(t, want, got.Output)
		assert.Empty(t, got.Diagnostics)
	}

	got := render(t, "{= v[3] =}", environment)
	assert.Equal(t, "", got.Output)
	assert.NotEmpty(t, got.Diagnostics)
}

func TestEnvironmentIsNotModified(t *testing.T) {
	environment := env.Environment{"v": env.TextVector{"a"}, "n": env.Number(1)}
	render(t, "{= v[0] =}{= n + 1 =}{= missing =}", environment)
	assert.Equal(t, env.Environment{"v": env.TextVector{"a"}, "n": env.Number(1)}, environment)
}
