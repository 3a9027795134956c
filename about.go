package smartgraph

// Version is the API version string reported by the version endpoint.
const Version = "SmartGraph API v1"

// Citation is the reference to cite when publishing results obtained with
// SmartGraph.
const Citation = "Zahoránszky-Kőhalmi, G., Sheils, T. & Oprea, T.I. SmartGraph: a network pharmacology investigation platform. J Cheminform 12, 5 (2020). https://doi.org/10.1186/s13321-020-0409-9"

// BibTeX is the BibTeX entry of Citation.
const BibTeX = `@article{smartgraph2020,
  author = {G. Zahoránszky-Kohalmi and T. Sheils and T.I. Oprea},
  title = {SmartGraph: A network pharmacology investigation platform},
  journal = {Journal of Cheminformatics},
  volume = {12},
  issue = {1},
  year = {2020},
  issn = {17582946},
  doi = {10.1186/s13321-020-0409-9},
  keywords = {Bioactivity prediction,Network perturbation,Network pharmacology,Network visualization,Pathway analysis,Potent chemical pattern,Protein-protein interactions (PPIs),Scaffold,Target deconvolution,neo4j},
}`

// CitationInfo is the body of the cite endpoint.
type CitationInfo struct {
	Citation string `json:"citation"`
}

// Cite returns the citation of the platform.
func Cite() CitationInfo {
	return CitationInfo{Citation: Citation}
}
