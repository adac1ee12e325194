package models

// Anamnesis is the structured clinical intake record. Field groups mirror
// the clinic's printed intake form: identification, family history,
// health, symptoms, social life and the history of the complaint.
type Anamnesis struct {
	CivilStatus      string `json:"civil_status"`
	HasChildren      string `json:"has_children"`
	NumberOfChildren int    `json:"number_of_children"`
	HadAbortion      string `json:"had_abortion"`
	Occupation       string `json:"occupation"`
	EducationLevel   string `json:"education_level"`

	MothersName          string `json:"mothers_name"`
	MothersRelationship  string `json:"mothers_relationship"`
	FathersName          string `json:"fathers_name"`
	FathersRelationship  string `json:"fathers_relationship"`
	HasSiblings          string `json:"has_siblings"`
	NumberOfSiblings     int    `json:"number_of_siblings"`
	SiblingsRelationship string `json:"siblings_relationship"`
	ChildhoodDescription string `json:"childhood_description"`

	ContinuousMedication     string `json:"continuous_medication"`
	MedicationsDetails       string `json:"medications_details"`
	RelevantMedicalDiagnosis string `json:"relevant_medical_diagnosis"`

	SubstanceUseMarijuana bool   `json:"substance_use_marijuana"`
	SubstanceUseCocaine   bool   `json:"substance_use_cocaine"`
	SubstanceUseAlcohol   bool   `json:"substance_use_alcohol"`
	SubstanceUseCigarette bool   `json:"substance_use_cigarette"`
	SubstanceUseNone      bool   `json:"substance_use_none"`
	SleepQuality          string `json:"sleep_quality"`

	MainSymptomsSadness     bool   `json:"main_symptoms_sadness"`
	MainSymptomsDepression  bool   `json:"main_symptoms_depression"`
	MainSymptomsAnxiety     bool   `json:"main_symptoms_anxiety"`
	MainSymptomsNervousness bool   `json:"main_symptoms_nervousness"`
	MainSymptomsPhobias     bool   `json:"main_symptoms_phobias"`
	MainSymptomsOtherFear   string `json:"main_symptoms_other_fear"`

	AnxietyLevel            string `json:"anxiety_level"`
	IrritabilityLevel       string `json:"irritability_level"`
	SadnessLevel            string `json:"sadness_level"`
	CarriesGuilt            string `json:"carries_guilt"`
	CarriesInjustice        string `json:"carries_injustice"`
	SuicidalThoughts        string `json:"suicidal_thoughts"`
	SuicidalThoughtsComment string `json:"suicidal_thoughts_comment"`

	HasCloseFriends     string `json:"has_close_friends"`
	SocialConsideration string `json:"social_consideration"`
	PhysicalActivity    string `json:"physical_activity"`
	FinancialStatus     string `json:"financial_status"`
	DailyRoutine        string `json:"daily_routine"`

	HowFoundAnalysis        string `json:"how_found_analysis"`
	HowFoundAnalysisOther   string `json:"how_found_analysis_other"`
	PreviousTherapy         string `json:"previous_therapy"`
	PreviousTherapyDuration string `json:"previous_therapy_duration"`
	MainReason              string `json:"main_reason"`
	SituationStart          string `json:"situation_start"`
	TriggeringEvent         string `json:"triggering_event"`
	ExpectationsAnalysis    string `json:"expectations_analysis"`

	GeneralObservations string `json:"general_observations"`
}
