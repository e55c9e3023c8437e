package core

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

func TestAddToken(t *testing.T) {
	index := NewInvertedIndex()
	index.AddToken("cyrup", "0", 1)
	index.AddToken("cyrup", "1", math.Sqrt2)
	index.AddToken("cyrup", "1", 2)
	index.AddToken("curl", "0", 1)
	index.AddToken("", "0", 1)

	utils.Expect(t, "2", index.GetDocFreq("cyrup"))
	utils.Expect(t, "2", index.GetTermFrequency("cyrup", "1"))
	utils.Expect(t, "0", index.GetTermFrequency("cyrup", "7"))
	utils.Expect(t, "0", index.GetDocFreq("cy"))
	utils.Expect(t, "true", index.HasToken("curl"))
	utils.Expect(t, "false", index.HasToken("cur"))
	utils.Expect(t, "true", index.HasPrefix("cur"))
	utils.Expect(t, "false", index.HasPrefix("cx"))
	utils.Expect(t, "2", index.Len())
	utils.Expect(t, "[curl cyrup]", index.Tokens())
}

func TestGetDocsReturnsCopy(t *testing.T) {
	index := NewInvertedIndex()
	index.AddToken("gpu", "0", 1)
	docs := index.GetDocs("gpu")
	docs["9"] = 1
	utils.Expect(t, "map[0:1]", index.GetDocs("gpu"))
	utils.Expect(t, "map[]", index.GetDocs("missing"))
}

func TestRemoveToken(t *testing.T) {
	index := NewInvertedIndex()
	index.AddToken("linux", "0", 1)
	index.AddToken("linux", "1", 1)
	index.RemoveToken("linux", "0")
	index.RemoveToken("linux", "0")
	index.RemoveToken("missing", "0")
	utils.Expect(t, "1", index.GetDocFreq("linux"))

	index.RemoveToken("linux", "1")
	utils.Expect(t, "0", index.GetDocFreq("linux"))
	utils.Expect(t, "false", index.HasToken("linux"))
	utils.Expect(t, "true", index.HasPrefix("linux"))
	utils.Expect(t, "[]", index.ExpandToken("lin"))
}

func TestExpandToken(t *testing.T) {
	index := NewInvertedIndex()
	for _, token := range []string{"start", "instal", "includ", "in", "introduct"} {
		index.AddToken(token, "0", 1)
	}
	utils.Expect(t, "[in includ instal introduct]", index.ExpandToken("in"))
	utils.Expect(t, "[instal]", index.ExpandToken("inst"))
	utils.Expect(t, "[]", index.ExpandToken("x"))
	utils.Expect(t, "[]", index.ExpandToken(""))
}

func TestInvertedIndexJSON(t *testing.T) {
	index := NewInvertedIndex()
	index.AddToken("ab", "0", 1)
	index.AddToken("ab", "1", math.Sqrt2)
	index.AddToken("e", "10", 3)

	data, err := json.Marshal(index)
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"root":{"a":{"b":{"df":2,"docs":{"0":{"tf":1.0},"1":{"tf":1.4142135623730951}}},"df":0,"docs":{}},` +
		`"df":0,"docs":{},"e":{"df":1,"docs":{"10":{"tf":3.0}}}}}`
	utils.Expect(t, expected, string(data))

	var decoded InvertedIndex
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	utils.Expect(t, "[ab e]", decoded.Tokens())
	utils.Expect(t, "1.4142135623730951", decoded.GetTermFrequency("ab", "1"))

	again, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatal(err)
	}
	utils.Expect(t, expected, string(again))
}

func TestInvertedIndexJSONErrors(t *testing.T) {
	for _, data := range []string{
		`{}`,
		`{"root":[]}`,
		`{"root":{"ab":{"df":0,"docs":{}}}}`,
		`{"root":{"a":{"df":"1","docs":{}}}}`,
		`{"root":{"a":{"df":1,"docs":{"0":{}}}}}`,
	} {
		var index InvertedIndex
		if err := index.UnmarshalJSON([]byte(data)); err == nil {
			t.Errorf("%s 应解析失败", data)
		}
	}
}

func TestClone(t *testing.T) {
	index := NewInvertedIndex()
	index.AddToken("bash", "0", 1)
	copied := index.clone()
	index.AddToken("bash", "1", 1)
	index.AddToken("gpu", "1", 1)
	utils.Expect(t, "1", copied.GetDocFreq("bash"))
	utils.Expect(t, "[bash]", copied.Tokens())
}
