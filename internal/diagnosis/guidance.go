package diagnosis

// GuidanceSection is one headed list inside a guidance block.
type GuidanceSection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// GuidanceBlock is the static informational text shown with a diagnosis.
type GuidanceBlock struct {
	Label    Label             `json:"label"`
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Sections []GuidanceSection `json:"sections"`
}

var malignantGuidance = GuidanceBlock{
	Label:   LabelMalignant,
	Title:   "Risk factors and next steps",
	Summary: "The measurements resemble those of malignant tumors. This is not a diagnosis; please discuss the result with a doctor as soon as possible.",
	Sections: []GuidanceSection{
		{
			Heading: "Common risk factors",
			Items: []string{
				"Age: risk increases with age, especially after 50.",
				"Family history of breast or ovarian cancer.",
				"Inherited BRCA1 or BRCA2 gene mutations.",
				"Early menstruation or late menopause.",
				"Dense breast tissue.",
				"Previous radiation therapy to the chest.",
				"Alcohol use, obesity and physical inactivity.",
			},
		},
		{
			Heading: "Next steps",
			Items: []string{
				"Book an appointment with your doctor or an oncologist.",
				"Ask about a diagnostic mammogram, ultrasound or MRI.",
				"A biopsy is the only way to confirm the result.",
				"Bring these measurements and any previous imaging to the visit.",
				"Reach out to family, friends or a support group.",
			},
		},
	},
}

var benignGuidance = GuidanceBlock{
	Label:   LabelBenign,
	Title:   "General health tips",
	Summary: "The measurements resemble those of benign tumors. Keep up regular screening and report any changes to your doctor.",
	Sections: []GuidanceSection{
		{
			Heading: "Stay healthy",
			Items: []string{
				"Keep a healthy weight and stay physically active.",
				"Eat plenty of fruit, vegetables and whole grains.",
				"Limit alcohol and avoid smoking.",
				"Do monthly breast self-examinations.",
				"Follow your recommended mammogram schedule.",
				"See your doctor if you notice a lump, pain or skin changes.",
			},
		},
	},
}

// GuidanceFor returns the guidance block for label. Every label other than
// Malignant gets the general health block.
func GuidanceFor(label Label) GuidanceBlock {
	switch label {
	case LabelMalignant:
		return cloneGuidance(malignantGuidance)
	default:
		return cloneGuidance(benignGuidance)
	}
}

func cloneGuidance(g GuidanceBlock) GuidanceBlock {
	sections := make([]GuidanceSection, len(g.Sections))
	for i, s := range g.Sections {
		sections[i] = GuidanceSection{
			Heading: s.Heading,
			Items:   append([]string(nil), s.Items...),
		}
	}
	g.Sections = sections
	return g
}
