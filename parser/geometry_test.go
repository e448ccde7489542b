package parser

import (
	"errors"
	"testing"

	"orcaparse/syntax"
)

func TestParseCartesianGeometry(t *testing.T) {
	root := mustParse(t, "*xyz 0 1\nH 0.0 0.0 0.0\n*\n")
	blocks := syntax.GeometryBlocks(root)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 geometry block, got %d", len(blocks))
	}
	geom := blocks[0]
	if geom.Variant() != syntax.VariantXYZ {
		t.Errorf("expected Cartesian block, got %s", geom.Variant())
	}
	if geom.FieldText("charge") != "0" || geom.FieldText("multiplicity") != "1" {
		t.Errorf("expected charge 0 multiplicity 1, got %q %q", geom.FieldText("charge"), geom.FieldText("multiplicity"))
	}
	lines := syntax.CoordinateLines(geom)
	if len(lines) != 1 {
		t.Fatalf("expected 1 coordinate line, got %d", len(lines))
	}
	line := lines[0]
	if line.FieldText("element") != "H" {
		t.Errorf("expected element H, got %q", line.FieldText("element"))
	}
	for _, f := range []string{"x", "y", "z"} {
		v := line.ChildByField(f)
		if v == nil || v.Text() != "0.0" || v.Variant() != syntax.VariantFloat {
			t.Errorf("expected %s = 0.0, got %v", f, v)
		}
	}
}

func TestParseGeometryTypes(t *testing.T) {
	tests := []struct {
		src     string
		variant string
		lines   int
	}{
		{"*XYZ -1 2\nC 0 0 0\nO 0 0 1.2\n*\n", syntax.VariantXYZ, 2},
		{"*int 0 1\nC 0 0 0 0.0 0.0 0.0\nO 1 0 0 1.2 0.0 0.0\n*\n", syntax.VariantInternal, 2},
		{"*gzmt 0 1\nC\nO 1 1.2\nH 1 1.1 2 120.0\n*\n", syntax.VariantZMatrix, 3},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			root := mustParse(t, tt.src)
			geom := root.Child(0)
			if geom.Variant() != tt.variant {
				t.Errorf("expected %s, got %s", tt.variant, geom.Variant())
			}
			if n := len(syntax.CoordinateLines(geom)); n != tt.lines {
				t.Errorf("expected %d lines, got %d", tt.lines, n)
			}
		})
	}
}

func TestParseZMatrixRows(t *testing.T) {
	root := mustParse(t, "*gzmt 0 1\nC\nO 1 1.2\nH 1 1.1 2 120.0\nH 1 1.1 2 120.0 3 180.0\n*\n")
	lines := syntax.CoordinateLines(root.Child(0))
	want := []string{syntax.VariantZMat1, syntax.VariantZMat2, syntax.VariantZMat3, syntax.VariantZMat4}
	if len(lines) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(lines))
	}
	for i, l := range lines {
		if l.Variant() != want[i] {
			t.Errorf("row %d: expected %s, got %s", i, want[i], l.Variant())
		}
	}
	last := lines[3]
	if last.FieldText("zmat_atom3") != "3" || last.FieldText("dihedral") != "180.0" {
		t.Errorf("unexpected last row %q", last.Content())
	}
}

func TestParseGeometryLine(t *testing.T) {
	tests := []struct {
		src     string
		variant string
		file    string
	}{
		{"*xyzfile 0 1 mol.xyz\n", syntax.VariantXYZ, "mol.xyz"},
		{"*gzmtfile 1 2 ../geo/start.gzmt\n", syntax.VariantZMatrix, "../geo/start.gzmt"},
		{"*pdbfile 0 1 \"protein.pdb\"\n", "pdb", `"protein.pdb"`},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			root := mustParse(t, tt.src)
			line := root.Child(0)
			if !line.Is(syntax.KindGeometryLine) {
				t.Fatalf("expected geometry_line, got %s", line)
			}
			if line.Variant() != tt.variant {
				t.Errorf("expected %s, got %s", tt.variant, line.Variant())
			}
			if line.FieldText("file") != tt.file {
				t.Errorf("expected file %q, got %q", tt.file, line.FieldText("file"))
			}
		})
	}
}

func TestParseVariableCoordinates(t *testing.T) {
	root := mustParse(t, "%compound\nNewStep\n*xyz 0 1\nH 0.0 {y} &{z}\n*\nStepEnd\nend\n")
	lines := syntax.FindAll(root, syntax.OfKind(syntax.KindCoordinateLine))
	if len(lines) != 1 {
		t.Fatalf("expected 1 coordinate line, got %d", len(lines))
	}
	y := lines[0].ChildByField("y")
	if y.Variant() != syntax.VariantVariableRef || y.FieldText("name") != "y" {
		t.Errorf("expected variable reference y, got %s %q", y.Variant(), y.Content())
	}
	z := lines[0].ChildByField("z")
	if z.Variant() != syntax.VariantCompoundRef || z.FieldText("name") != "z" {
		t.Errorf("expected compound reference z, got %s %q", z.Variant(), z.Content())
	}
}

func TestParseInternalSubblock(t *testing.T) {
	root := mustParse(t, "%coords\n  CTyp internal\n  Coords\n    C 1 0 0 120.0 1.5 0.0\n  end\nend\n")
	sub := syntax.Subblocks(root, "Coords")
	if len(sub) != 1 {
		t.Fatalf("expected 1 subblock, got %d", len(sub))
	}
	if sub[0].Variant() != syntax.VariantInternal {
		t.Fatalf("expected internal coordinates, got %s", sub[0].Variant())
	}
	lines := syntax.CoordinateLines(sub[0])
	if len(lines) != 1 || lines[0].Variant() != syntax.VariantInternal {
		t.Fatalf("expected 1 internal line, got %d", len(lines))
	}
	line := lines[0]
	checks := map[string]string{
		"connect1": "1",
		"connect2": "0",
		"connect3": "0",
		"distance": "120.0",
		"angle":    "1.5",
		"dihedral": "0.0",
	}
	for field, want := range checks {
		if got := line.FieldText(field); got != want {
			t.Errorf("%s: expected %q, got %q", field, want, got)
		}
	}
}

func TestClassifySubblockBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"cartesian", "    C 0.0 0.0 0.0\n    H 0.0 0.0 1.1\n", syntax.VariantXYZ},
		{"internal", "    C 1 2 3 1.0 2.0 3.0\n", syntax.VariantInternal},
		{"internal wins over zmat4", "    C 1 2 3 4 5 6\n", syntax.VariantInternal},
		{"zmatrix", "    C\n    O 1 1.2\n", syntax.VariantZMatrix},
		{"zmatrix two atoms", "    O 1 1.2\n", syntax.VariantZMatrix},
		{"lone word body", "    Tol\n    end\n", syntax.VariantBody},
		{"key values", "    NR 5\n    Mode fast\n", syntax.VariantBody},
		{"empty", "", syntax.VariantEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "%block\n  Sub\n" + tt.body + "  end\nend\n"
			root := mustParse(t, src)
			sub := syntax.Subblocks(root, "Sub")
			if len(sub) != 1 {
				t.Fatalf("expected 1 subblock, got %d", len(sub))
			}
			if sub[0].Variant() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, sub[0].Variant())
			}
		})
	}
}

func TestAmbiguousSubblockBody(t *testing.T) {
	root, errs := parseWithErrors(t, "%coords\n  Coords\n    C 1.0 2.0\n  end\nend\n", Options{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	var amb *AmbiguousBodyError
	if !errors.As(errs, &amb) {
		t.Fatalf("expected AmbiguousBodyError, got %T", errs[0])
	}
	if amb.Subblock != "Coords" {
		t.Errorf("expected subblock Coords, got %q", amb.Subblock)
	}
	var syn *SyntaxError
	if !errors.As(errs, &syn) {
		t.Error("expected AmbiguousBodyError to also match SyntaxError")
	}
	if pos := amb.Position(); pos.Line != 3 || pos.Col != 5 {
		t.Errorf("expected error at 3:5, got %s", pos)
	}
	sub := syntax.Subblocks(root, "Coords")[0]
	if sub.Variant() != syntax.VariantAmbiguous {
		t.Errorf("expected ambiguous variant, got %s", sub.Variant())
	}
	if bad := sub.ChildrenOfKind(syntax.KindError); len(bad) != 1 || bad[0].Text() != "C 1.0 2.0" {
		t.Errorf("expected the body to be skipped as one error node, got %v", bad)
	}
}

func TestCoordinateLineOfWrongShape(t *testing.T) {
	root, errs := parseWithErrors(t, "*xyz 0 1\nC 0 0 0\nO 1 1.2\nH 0 0 1\n*\n", Options{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	geom := root.Child(0)
	if n := len(syntax.CoordinateLines(geom)); n != 2 {
		t.Errorf("expected 2 good lines, got %d", n)
	}
	if n := len(geom.ChildrenOfKind(syntax.KindError)); n != 1 {
		t.Errorf("expected 1 error node, got %d", n)
	}
}

func TestGeometryHeaderErrorKeepsBody(t *testing.T) {
	root, errs := parseWithErrors(t, "*xyz 0 x\nH 0 0 0\n*\n", Options{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if n := len(syntax.CoordinateLines(root.Child(0))); n != 1 {
		t.Errorf("expected the coordinate line to survive, got %d", n)
	}
}
