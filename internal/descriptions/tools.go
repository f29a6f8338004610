package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Basic Tools
	DocStructureFileDescription = `Convert a document into a structured, hierarchical JSON tree using a level schema.

**When to use:** Need a nested, machine-readable representation of a document whose structure follows recognizable heading patterns (laws, contracts, manuals, books).

**Why it's useful:** Turns flat text into a validated tree of titles, descriptions, paragraphs and nested sections, ready for indexing, search, or downstream processing.

**Examples:**
• Structure legislation: "Structure civil-code.pdf with the chapter/article schema"
• Process contracts: "Build a section tree from services-agreement.docx"
• Index manuals: "Convert user-manual.md into nested sections for the search index"

**Common workflows:**
1. Legal Analysis: Structure document → Traverse articles → Extract obligations
2. Knowledge Base: Structure manual → Index sections → Answer queries per section
3. Migration: Structure legacy document → Map tree to CMS entries

**Best practices:** Validate the schema first with 'doc_validate_schema'; order schema levels from most to least specific, since earlier levels win ties.`

	DocExtractFileDescription = `Extract plain text from a document without structuring it.

**When to use:** Need the raw text content of a file (PDF, DOCX, Markdown, HTML, RTF, ODT, plain text, or images via OCR) for inspection or custom processing.

**Why it's useful:** Handles format detection and decoding in one step, including OCR for scanned documents when enabled.

**Examples:**
• Inspect a file before structuring: "Extract text from decree.pdf to check heading patterns"
• Feed other tools: "Get text from report.odt for summarization"

**Common workflows:**
1. Schema Design: Extract text → Study heading patterns → Write level regexes
2. Quality Check: Extract text → Verify OCR quality → Adjust scan mode

**Best practices:** Use scan_mode "auto" for PDFs of unknown provenance; it falls back to OCR only on pages without text.`

	DocDetectTypeDescription = `Detect the format of a document file from its content.

**When to use:** Before processing user-supplied files, or when the file extension is missing or untrustworthy.

**Why it's useful:** Detection reads magic bytes rather than trusting extensions, so renamed or extension-less files are identified correctly.

**Examples:**
• Upload triage: "Detect the type of upload-1234 before routing it"
• Batch safety: "Check every file in /inbox/ is a supported format"

**Best practices:** Run this first in automated pipelines and reject unsupported formats early.`

	DocValidateSchemaDescription = `Validate a level schema without processing any document.

**When to use:** While designing or editing a schema, or before deploying one into an automated pipeline.

**Why it's useful:** Reports the first configuration problem found (unknown parent, parent cycle, missing root level, invalid regex, field collision) with the offending level named, instead of failing later mid-document.

**Examples:**
• Schema authoring: "Validate chapter-article.json before running it on the corpus"
• CI gate: "Validate every schema under schemas/ on each commit"

**Best practices:** Fix problems in the order reported; the validator checks references before patterns.`

	DocServerInfoDescription = `Get server information, available tools, supported formats, and usage guidance.

**When to use:** To discover capabilities, confirm configuration, or orient a new client session.

**Why it's useful:** Single call returning the server version, registered tools, supported document formats, and recommended workflows.

**Best practices:** Call once at session start to learn which formats and scan modes this deployment supports.`
)

// UsageGuidance provides workflow recommendations surfaced by doc_server_info.
const UsageGuidance = `💡 Recommended workflow:
1. doc_detect_type - confirm the file format is supported
2. doc_validate_schema - check your level schema before use
3. doc_extract_file - inspect raw text if you are still designing patterns
4. doc_structure_file - produce the final structured tree

Schema tips:
• Levels are matched in declaration order; put more specific patterns first.
• Exactly one level must have an empty parent (the root level).
• Patterns match whole lines; anchors are added automatically.`
