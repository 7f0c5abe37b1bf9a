package assistant

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NewRegistry builds the five assistant functions.
func NewRegistry() *Registry {
	return newRegistry(
		contractAnalysis(),
		documentDrafting(),
		caseResearch(),
		memoGenerator(),
		complianceCheck(),
	)
}

// joinOr serializes a multiselect as a comma-joined list; an empty
// selection renders the function's named default rather than an empty
// list, so the model never sees an ambiguous empty set.
func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// textOr substitutes an explicit sentinel for a blank optional field,
// never an empty string.
func textOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func contractAnalysis() *FunctionSpec {
	return &FunctionSpec{
		ID:    "contract_analysis",
		Title: "Contract Analysis & Review",
		Fields: []FieldSpec{
			{Name: "contract_text", Label: "Contract Text", Kind: KindTextarea, Required: true,
				Placeholder: "Enter the contract text you want to analyze..."},
			{Name: "analysis_type", Label: "Analysis Type", Kind: KindSelect,
				Options: []string{"General Review", "Risk Assessment", "Key Terms Extraction", "Compliance Check"}},
			{Name: "focus_areas", Label: "Analysis Focus", Kind: KindMultiSelect,
				Options: []string{"Liability Clauses", "Payment Terms", "Termination Conditions", "Intellectual Property", "Confidentiality", "Force Majeure"}},
			{Name: "contract_type", Label: "Contract Type", Kind: KindSelect,
				Options: []string{"Employment", "Service Agreement", "NDA", "Purchase Agreement", "Lease", "Other"}},
		},
		RequiredMessage: "Please provide contract text or upload a contract file to analyze.",
		Compose: func(f Fields) Prompt {
			system := fmt.Sprintf(`You are an expert legal contract analyst. Analyze the provided contract with focus on %s.
Pay special attention to: %s.
This appears to be a %s contract.

Provide a structured analysis including:
1. Executive Summary
2. Key Terms and Conditions
3. Potential Risks and Red Flags
4. Recommendations
5. Missing Clauses (if any)

Format your response clearly with headings and bullet points.`,
				f.Text("analysis_type"),
				joinOr(f.List("focus_areas"), "all standard contract provisions"),
				f.Text("contract_type"))

			// The contract body is the user turn, verbatim.
			return Prompt{System: system, User: f.Text("contract_text")}
		},
	}
}

func documentDrafting() *FunctionSpec {
	return &FunctionSpec{
		ID:    "document_drafting",
		Title: "Legal Document Drafting",
		Fields: []FieldSpec{
			{Name: "document_type", Label: "Document Type", Kind: KindSelect,
				Options: []string{"Non-Disclosure Agreement (NDA)", "Employment Contract", "Service Agreement", "Terms of Service", "Privacy Policy", "Demand Letter", "Cease and Desist"}},
			{Name: "document_details", Label: "Document Details", Kind: KindTextarea, Required: true,
				Placeholder: "Describe the specific terms, parties involved, and any special requirements..."},
			{Name: "duration", Label: "Contract Duration", Kind: KindText, Placeholder: "e.g., 2 years"},
			{Name: "compensation", Label: "Compensation Details", Kind: KindText, Placeholder: "e.g., $50,000 annually"},
			{Name: "jurisdiction", Label: "Jurisdiction", Kind: KindText, Placeholder: "e.g., California, USA"},
			{Name: "parties", Label: "Parties Involved", Kind: KindTextarea, Placeholder: "List the parties (names, addresses, roles)"},
		},
		RequiredMessage: "Please provide document details and requirements.",
		Compose: func(f Fields) Prompt {
			system := fmt.Sprintf(`You are an expert legal document drafter. Create a comprehensive %s based on the provided requirements.

Include standard legal provisions appropriate for this document type, considering the jurisdiction: %s.

Structure the document professionally with:
1. Title and parties identification
2. Recitals/Background
3. Main terms and conditions
4. Standard legal clauses
5. Signature blocks

Make it legally sound but clearly written. Include appropriate legal disclaimers.`,
				f.Text("document_type"),
				textOr(f.Text("jurisdiction"), "general"))

			user := fmt.Sprintf(`Document Type: %s
Details: %s
Parties: %s
Jurisdiction: %s
Additional Info: Duration: %s, Compensation: %s`,
				f.Text("document_type"),
				f.Text("document_details"),
				textOr(f.Text("parties"), "Not specified"),
				textOr(f.Text("jurisdiction"), "Not specified"),
				textOr(f.Text("duration"), "N/A"),
				textOr(f.Text("compensation"), "N/A"))

			return Prompt{System: system, User: user}
		},
		Download: func(f Fields, now time.Time) string {
			return strings.ReplaceAll(f.Text("document_type"), " ", "_") + "_" + now.Format("20060102") + ".txt"
		},
	}
}

func caseResearch() *FunctionSpec {
	return &FunctionSpec{
		ID:    "case_research",
		Title: "Case Law Research Assistant",
		Fields: []FieldSpec{
			{Name: "legal_issue", Label: "Legal Issue", Kind: KindTextarea, Required: true,
				Placeholder: "e.g., Employment discrimination based on age in California..."},
			{Name: "case_context", Label: "Additional Context", Kind: KindTextarea,
				Placeholder: "Provide any relevant facts, similar situations, or specific requirements..."},
			{Name: "jurisdiction_filter", Label: "Jurisdiction Focus", Kind: KindMultiSelect,
				Options: []string{"Federal", "Kuala Lumpur", "Selangor", "Putrajaya", "Sabah", "Sarawak", "Other State"}},
			{Name: "case_type", Label: "Case Type", Kind: KindSelect,
				Options: []string{"All Types", "Civil", "Criminal", "Constitutional", "Employment", "Contract", "Tort"}},
			{Name: "time_period", Label: "Time Period", Kind: KindSelect,
				Options: []string{"Recent (last 5 years)", "Last 10 years", "Landmark cases", "All time periods"}},
		},
		RequiredMessage: "Please describe the legal issue you want to research.",
		Compose: func(f Fields) Prompt {
			jurisdictions := joinOr(f.List("jurisdiction_filter"), "all jurisdictions")

			system := fmt.Sprintf(`You are an expert Malaysia legal researcher. Research and provide information about relevant case law for the given legal issue.

Focus on: %s
Case type: %s
Time period: %s

Provide a comprehensive research summary including:
1. Most relevant landmark/precedent cases
2. Key legal principles established
3. Recent developments or trends
4. Distinguishing factors and exceptions
5. Practical applications and implications

Cite cases properly and explain their relevance to the issue.`,
				jurisdictions,
				f.Text("case_type"),
				f.Text("time_period"))

			user := fmt.Sprintf(`Legal Issue: %s
Context: %s
Research Parameters: Jurisdiction: %s, Type: %s, Period: %s`,
				f.Text("legal_issue"),
				textOr(f.Text("case_context"), "Not provided"),
				jurisdictions,
				f.Text("case_type"),
				f.Text("time_period"))

			return Prompt{System: system, User: user}
		},
	}
}

func memoGenerator() *FunctionSpec {
	return &FunctionSpec{
		ID:    "memo_generator",
		Title: "Legal Memorandum Generator",
		Fields: []FieldSpec{
			{Name: "memo_to", Label: "To", Kind: KindText, Placeholder: "e.g., Senior Partner, Client Name"},
			{Name: "memo_from", Label: "From", Kind: KindText, Placeholder: "e.g., Associate Attorney"},
			{Name: "memo_subject", Label: "Subject", Kind: KindText, Required: true,
				Placeholder: "Legal issue or case matter"},
			{Name: "facts", Label: "Statement of Facts", Kind: KindTextarea, Required: true,
				Placeholder: "Provide the relevant facts of the case or situation..."},
			{Name: "legal_question", Label: "Legal Question(s)", Kind: KindTextarea, Required: true,
				Placeholder: "What specific legal questions need to be addressed?"},
			{Name: "memo_type", Label: "Memorandum Type", Kind: KindSelect,
				Options: []string{"Legal Research Memo", "Case Analysis", "Litigation Strategy", "Compliance Memo", "Opinion Letter"}},
			{Name: "priority", Label: "Priority Level", Kind: KindSelect,
				Options: []string{"Standard", "Urgent", "Confidential"}},
			{Name: "analysis_depth", Label: "Analysis Depth", Kind: KindSelect,
				Options: []string{"Brief Summary", "Standard Analysis", "Comprehensive Review"}},
			{Name: "include_recommendations", Label: "Include Recommendations", Kind: KindCheckbox, Default: true},
		},
		RequiredMessage: "Please fill in all required fields (Subject, Facts, and Legal Questions).",
		Compose: func(f Fields) Prompt {
			includeRecs := f.Bool("include_recommendations", true)
			recommendations := ""
			if includeRecs {
				recommendations = "\n6. Recommendations"
			}

			system := fmt.Sprintf(`You are an expert legal writer creating a professional legal memorandum.

Create a %s with %s level of detail.
Priority: %s
Include recommendations: %s

Structure the memorandum professionally:
1. Header (To, From, Date, Subject)
2. Executive Summary
3. Statement of Facts
4. Legal Analysis
5. Conclusion%s

Use proper legal writing style with clear headings and logical flow.`,
				f.Text("memo_type"),
				f.Text("analysis_depth"),
				f.Text("priority"),
				strconv.FormatBool(includeRecs),
				recommendations)

			user := fmt.Sprintf(`MEMORANDUM DETAILS:
To: %s
From: %s
Subject: %s
Type: %s

Facts: %s
Legal Questions: %s`,
				textOr(f.Text("memo_to"), "Not specified"),
				textOr(f.Text("memo_from"), "Not specified"),
				f.Text("memo_subject"),
				f.Text("memo_type"),
				f.Text("facts"),
				f.Text("legal_question"))

			return Prompt{System: system, User: user}
		},
		Download: func(_ Fields, now time.Time) string {
			return "Legal_Memo_" + now.Format("20060102_1504") + ".txt"
		},
	}
}

func complianceCheck() *FunctionSpec {
	return &FunctionSpec{
		ID:    "compliance_check",
		Title: "Regulatory Compliance Checker",
		Fields: []FieldSpec{
			{Name: "industry", Label: "Industry/Sector", Kind: KindSelect,
				Options: []string{"Healthcare (HIPAA)", "Finance (SOX, GDPR)", "Technology (GDPR, CCPA)", "Education (FERPA)", "Government Contracting", "Food & Drug (FDA)", "Other"}},
			{Name: "business_description", Label: "Business/Activity Description", Kind: KindTextarea, Required: true,
				Placeholder: "Describe your business activities, data handling, or specific practices to check..."},
			{Name: "specific_concerns", Label: "Specific Compliance Concerns", Kind: KindTextarea,
				Placeholder: "Any particular regulations or compliance areas you're concerned about?"},
			{Name: "business_size", Label: "Business Size", Kind: KindSelect,
				Options: []string{"Startup/Small", "Medium Enterprise", "Large Corporation", "Non-Profit"}},
			{Name: "geographic_scope", Label: "Geographic Operations", Kind: KindMultiSelect,
				Options: []string{"United States", "European Union", "California", "Canada", "International"}},
			{Name: "compliance_areas", Label: "Focus Areas", Kind: KindMultiSelect,
				Options: []string{"Data Privacy", "Financial Reporting", "Employment Law", "Environmental", "Safety Standards", "Licensing", "Tax Compliance"}},
		},
		RequiredMessage: "Please provide a business description to analyze compliance requirements.",
		Compose: func(f Fields) Prompt {
			geographic := joinOr(f.List("geographic_scope"), "Not specified")
			focus := joinOr(f.List("compliance_areas"), "General compliance")

			system := fmt.Sprintf(`You are an expert regulatory compliance consultant. Analyze the provided business description for compliance requirements in the %s sector.

Consider:
- Business size: %s
- Geographic scope: %s
- Focus areas: %s

Provide a comprehensive compliance analysis including:
1. Applicable Regulations and Laws
2. Current Compliance Status Assessment
3. Required Actions and Documentation
4. Risk Areas and Potential Violations
5. Implementation Timeline and Priorities
6. Ongoing Compliance Requirements

Be specific about regulatory requirements and practical steps.`,
				f.Text("industry"),
				f.Text("business_size"),
				geographic,
				focus)

			user := fmt.Sprintf(`Industry: %s
Business Description: %s
Specific Concerns: %s
Business Context: Size: %s, Geographic: %s, Focus: %s`,
				f.Text("industry"),
				f.Text("business_description"),
				textOr(f.Text("specific_concerns"), "General compliance review"),
				f.Text("business_size"),
				geographic,
				focus)

			return Prompt{System: system, User: user}
		},
	}
}
