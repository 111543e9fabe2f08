package huffpack

import (
	"strings"
	"testing"
)

func makeTestCodeTable(t *testing.T, data []byte) CodeTable {
	t.Helper()
	tree, err := BuildTree(CountFrequencies(data))
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	var ct CodeTable
	ct.Init(tree)
	return ct
}

func TestCodeTable(t *testing.T) {
	ct := makeTestCodeTable(t, makeInput(5, 9, 12, 13, 16, 45))

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = ct.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	if ct.Len() != 6 {
		t.Errorf("expected 6 symbols, got %d", ct.Len())
	}

	// 5×4 + 9×4 + 12×3 + 13×3 + 16×3 + 45×1
	if bits := ct.EncodedBits(CountFrequencies(makeInput(5, 9, 12, 13, 16, 45))); bits != 224 {
		t.Errorf("expected 224 encoded bits, got %d", bits)
	}
}

func TestCodeTable_SingleSymbol(t *testing.T) {
	ct := makeTestCodeTable(t, []byte("AAAAAAAA"))

	entries := ct.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Symbol != 'A' || entries[0].Code != MakeCode(1, 0) {
		t.Errorf("expected {65, \"0\"}, got {%d, %s}", entries[0].Symbol, entries[0].Code)
	}
}

func TestCodeTable_PrefixFree(t *testing.T) {
	inputs := map[string][]byte{
		"skewed":    makeSkewedInput(8192, 2),
		"uniform":   makeUniformInput(8192, 3),
		"fibonacci": makeFibonacciInput(20),
		"text":      []byte("the quick brown fox jumps over the lazy dog"),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			ct := makeTestCodeTable(t, data)
			entries := ct.Entries()
			if len(entries) != CountFrequencies(data).Distinct() {
				t.Errorf("expected one code per distinct symbol, got %d", len(entries))
			}
			for i, x := range entries {
				if x.Code.Size == 0 {
					t.Errorf("symbol %d has an empty code", x.Symbol)
				}
				for j, y := range entries {
					if i != j && x.Code.HasPrefix(y.Code) {
						t.Errorf("code %s of symbol %d has prefix %s of symbol %d", x.Code, x.Symbol, y.Code, y.Symbol)
					}
				}
			}
		})
	}
}

func TestCodeTable_LongCodes(t *testing.T) {
	ct := makeTestCodeTable(t, makeFibonacciInput(20))
	if ct.MaxSize() != 19 {
		t.Errorf("expected a 19-bit longest code, got %d", ct.MaxSize())
	}
	if ct.MinSize() != 1 {
		t.Errorf("expected a 1-bit shortest code, got %d", ct.MinSize())
	}
}
