package biprws

import "encoding/xml"

// QuerySpec is a data provider's query specification. The wire format is
// a nested XML tree; the scanner only cares about the leaves: the result
// objects declared by each query, in document order.
type QuerySpec struct {
	XMLName     xml.Name    `xml:"QuerySpec"`
	QueriesTree QueriesTree `xml:"queriesTree"`
}

// QueriesTree holds the query hierarchy. Combined queries (union,
// intersect) nest further children; plain documents carry a single
// child with a single query.
type QueriesTree struct {
	Children []QueryNode `xml:"children"`
}

type QueryNode struct {
	Queries  []Query     `xml:"query"`
	Children []QueryNode `xml:"children"`
}

type Query struct {
	Name          string         `xml:"name,attr"`
	ResultObjects []ResultObject `xml:"resultObjects>resultObject"`
}

// ResultObject is a named field returned by a query, e.g. a universe
// object like "Revenue".
type ResultObject struct {
	ID        string `xml:"id,attr"`
	Name      string `xml:"name,attr"`
	DataType  string `xml:"dataType,attr"`
	Qualifier string `xml:"qualification,attr"`
}

// ResultObjects flattens all result objects of the tree in document
// order.
func (s QuerySpec) ResultObjects() []ResultObject {
	var out []ResultObject
	for _, child := range s.QueriesTree.Children {
		out = append(out, child.resultObjects()...)
	}
	return out
}

func (n QueryNode) resultObjects() []ResultObject {
	var out []ResultObject
	for _, q := range n.Queries {
		out = append(out, q.ResultObjects...)
	}
	for _, child := range n.Children {
		out = append(out, child.resultObjects()...)
	}
	return out
}
