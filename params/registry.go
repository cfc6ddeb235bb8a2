package params

// UI section names, in the order the platform renders them.
// Sections marked Advanced on their specs collapse under a spoiler.
const (
	SectionInput          = "Input"
	SectionAlphafold2     = "Alphafold2 options"
	SectionColabfold      = "Colabfold options"
	SectionEsmfold        = "Esmfold options"
	SectionSkipping       = "Process skipping options"
	SectionGeneral        = "General options"
	SectionAlphafold2Link = "Alphafold2 DBs and parameters links options"
	SectionAlphafold2Path = "Alphafold2 DBs and parameters paths options"
	SectionColabfoldLink  = "Colabfold DBs and parameters links options"
	SectionColabfoldPath  = "Colabfold DBs and parameters paths options"
	SectionEsmfoldLink    = "Esmfold parameters links options"
	SectionEsmfoldPath    = "Esmfold parameters paths options"
	SectionGeneric        = "Generic options"
)

// RunNameParam is the registry name of the run identity parameter.
// It is bound to run metadata, never translated to a flag.
const RunNameParam = "run_name"

// registry holds every pipeline parameter in wire order: the order here
// is the order flags appear on the constructed command line, so it must
// stay stable for run reproducibility.
var registry = []Spec{
	{Name: RunNameParam, Kind: KindString, Section: SectionInput,
		DisplayName: "Run Name", Description: "Name of run"},
	{Name: "input", Kind: KindFile, Section: SectionInput,
		DisplayName: "Input CSV",
		Description: "Path to comma-separated file containing information about the samples in the experiment."},
	{Name: "outdir", Kind: KindDir, Section: SectionInput,
		DisplayName: "Output Directory",
		Description: "The output directory where the results will be saved."},
	{Name: "mode", Kind: KindEnum, Section: SectionInput, Default: ModeAlphafold2,
		DisplayName: "Pipeline Mode",
		Description: "Specifies the mode in which the pipeline will be run"},
	{Name: "use_gpu", Kind: KindBool, Section: SectionGeneral, Advanced: true,
		DisplayName: "Use GPU",
		Description: "Run on CPUs (default) or GPUs"},
	{Name: "email", Kind: KindString, Section: SectionGeneral, Advanced: true,
		DisplayName: "Email",
		Description: "Email address for completion summary."},
	{Name: "multiqc_title", Kind: KindString, Section: SectionGeneral, Advanced: true,
		DisplayName: "MultiQC Title",
		Description: "MultiQC report title. Printed as page header, used for filename if not otherwise specified."},
	{Name: "max_template_date", Kind: KindString, Section: SectionAlphafold2, Default: "2020-05-14",
		DisplayName: "Max Template Date",
		Description: "Maximum date of the PDB templates used by 'AlphaFold2' mode"},
	{Name: "alphafold2_db", Kind: KindString, Section: SectionAlphafold2,
		DisplayName: "AlphaFold2 DB",
		Description: "Specifies the DB and PARAMS path used by 'AlphaFold2' mode"},
	{Name: "full_dbs", Kind: KindBool, Section: SectionAlphafold2, Default: false,
		DisplayName: "Use Full DBs",
		Description: "If true uses the full version of the BFD database otherwise it uses its reduced version, small bfd"},
	{Name: "alphafold2_mode", Kind: KindString, Section: SectionAlphafold2, Default: "standard",
		DisplayName: "AlphaFold2 Mode",
		Description: "Specifies the mode in which Alphafold2 will be run"},
	{Name: "alphafold2_model_preset", Kind: KindString, Section: SectionAlphafold2, Default: "monomer",
		DisplayName: "AlphaFold2 Model Preset",
		Description: "Model preset for 'AlphaFold2' mode"},
	{Name: "colabfold_db", Kind: KindString, Section: SectionColabfold,
		DisplayName: "ColabFold DB",
		Description: "Specifies the PARAMS and DB path used by 'colabfold' mode"},
	{Name: "colabfold_server", Kind: KindString, Section: SectionColabfold, Default: "webserver",
		DisplayName: "ColabFold Server",
		Description: "Specifies the MSA server used by Colabfold"},
	{Name: "colabfold_model_preset", Kind: KindString, Section: SectionColabfold, Default: "alphafold2_ptm",
		DisplayName: "ColabFold Model Preset",
		Description: "Model preset for 'colabfold' mode"},
	{Name: "num_recycles_colabfold", Kind: KindInt, Section: SectionColabfold, Default: 3,
		DisplayName: "ColabFold Recycles",
		Description: "Number of recycles for Colabfold"},
	{Name: "use_amber", Kind: KindBool, Section: SectionColabfold, Default: true,
		DisplayName: "Use Amber",
		Description: "Use Amber minimization to refine the predicted structures"},
	{Name: "db_load_mode", Kind: KindInt, Section: SectionColabfold, Default: 0,
		DisplayName: "DB Load Mode",
		Description: "Specify the way that MMSeqs2 will load the required databases in memory"},
	{Name: "host_url", Kind: KindString, Section: SectionColabfold,
		DisplayName: "Host URL",
		Description: "Specify your custom MMSeqs2 API server url"},
	{Name: "use_templates", Kind: KindBool, Section: SectionColabfold, Default: true,
		DisplayName: "Use Templates",
		Description: "Use PDB templates"},
	{Name: "create_colabfold_index", Kind: KindBool, Section: SectionColabfold,
		DisplayName: "Create ColabFold Index",
		Description: "Create databases indexes when running colabfold_local mode"},
	{Name: "esmfold_db", Kind: KindDir, Section: SectionEsmfold,
		DisplayName: "ESMFold DB",
		Description: "Specifies the PARAMS path used by 'esmfold' mode"},
	{Name: "num_recycles_esmfold", Kind: KindInt, Section: SectionEsmfold, Default: 4,
		DisplayName: "ESMFold Recycles",
		Description: "Specifies the number of recycles used by Esmfold"},
	{Name: "esmfold_model_preset", Kind: KindString, Section: SectionEsmfold,
		DisplayName: "ESMFold Model Preset",
		Description: "Specifies whether is a 'monomer' or 'multimer' prediction"},
	{Name: "skip_multiqc", Kind: KindBool, Section: SectionSkipping,
		DisplayName: "Skip MultiQC",
		Description: "Skip MultiQC."},
	{Name: "bfd_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://storage.googleapis.com/alphafold-databases/casp14_versions/bfd_metaclust_clu_complete_id30_c90_final_seq.sorted_opt.tar.gz",
		DisplayName: "BFD Database Link",
		Description: "Link to BFD dababase"},
	{Name: "small_bfd_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://storage.googleapis.com/alphafold-databases/reduced_dbs/bfd-first_non_consensus_sequences.fasta.gz",
		DisplayName: "Small BFD Link",
		Description: "Link to a reduced version of the BFD dababase"},
	{Name: "alphafold2_params_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://storage.googleapis.com/alphafold/alphafold_params_2022-12-06.tar",
		DisplayName: "AlphaFold2 Params Link",
		Description: "Link to the Alphafold2 parameters"},
	{Name: "mgnify_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://storage.googleapis.com/alphafold-databases/v2.3/mgy_clusters_2022_05.fa.gz",
		DisplayName: "MGnify Link",
		Description: "Link to the MGnify database"},
	{Name: "pdb70_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "http://wwwuser.gwdg.de/~compbiol/data/hhsuite/databases/hhsuite_dbs/old-releases/pdb70_from_mmcif_200916.tar.gz",
		DisplayName: "PDB70 Link",
		Description: "Link to the PDB70 database"},
	{Name: "pdb_mmcif_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "rsync.rcsb.org::ftp_data/structures/divided/mmCIF/",
		DisplayName: "PDB mmCIF Link",
		Description: "Link to the PDB mmCIF database"},
	{Name: "pdb_obsolete_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://files.wwpdb.org/pub/pdb/data/status/obsolete.dat",
		DisplayName: "PDB Obsolete Link",
		Description: "Link to the PDB obsolete database"},
	{Name: "uniref30_alphafold2_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://storage.googleapis.com/alphafold-databases/v2.3/UniRef30_2021_03.tar.gz",
		DisplayName: "UniRef30 AlphaFold2 Link",
		Description: "Link to the Uniclust30 database"},
	{Name: "uniref90_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://ftp.ebi.ac.uk/pub/databases/uniprot/uniref/uniref90/uniref90.fasta.gz",
		DisplayName: "UniRef90 Link",
		Description: "Link to the UniRef90 database"},
	{Name: "pdb_seqres_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://files.wwpdb.org/pub/pdb/derived_data/pdb_seqres.txt",
		DisplayName: "PDB SEQRES Link",
		Description: "Link to the PDB SEQRES database"},
	{Name: "uniprot_sprot_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://ftp.ebi.ac.uk/pub/databases/uniprot/current_release/knowledgebase/complete/uniprot_sprot.fasta.gz",
		DisplayName: "UniProt Swiss-Prot Link",
		Description: "Link to the SwissProt UniProt database"},
	{Name: "uniprot_trembl_link", Kind: KindString, Section: SectionAlphafold2Link, Advanced: true,
		Default:     "https://ftp.ebi.ac.uk/pub/databases/uniprot/current_release/knowledgebase/complete/uniprot_trembl.fasta.gz",
		DisplayName: "UniProt TrEMBL Link",
		Description: "Link to the TrEMBL UniProt database"},
	{Name: "bfd_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "BFD Path",
		Description: "Path to BFD dababase"},
	{Name: "small_bfd_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "Small BFD Path",
		Description: "Path to a reduced version of the BFD database"},
	{Name: "alphafold2_params_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "AlphaFold2 Params Path",
		Description: "Path to the Alphafold2 parameters"},
	{Name: "mgnify_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "MGnify Path",
		Description: "Path to the MGnify database"},
	{Name: "pdb70_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "PDB70 Path",
		Description: "Path to the PDB70 database"},
	{Name: "pdb_mmcif_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "PDB mmCIF Path",
		Description: "Path to the PDB mmCIF database"},
	{Name: "uniref30_alphafold2_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "UniRef30 AlphaFold2 Path",
		Description: "Path to the Uniref30 database"},
	{Name: "uniref90_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "UniRef90 Path",
		Description: "Path to the UniRef90 database"},
	{Name: "pdb_seqres_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "PDB SEQRES Path",
		Description: "Path to the PDB SEQRES database"},
	{Name: "uniprot_path", Kind: KindDir, Section: SectionAlphafold2Path, Advanced: true,
		DisplayName: "UniProt Path",
		Description: "Path to UniProt database containing the SwissProt and the TrEMBL databases"},
	{Name: "colabfold_db_link", Kind: KindString, Section: SectionColabfoldLink, Advanced: true,
		Default:     "http://wwwuser.gwdg.de/~compbiol/colabfold/colabfold_envdb_202108.tar.gz",
		DisplayName: "ColabFold DB Link",
		Description: "Link to the Colabfold database"},
	{Name: "uniref30_colabfold_link", Kind: KindString, Section: SectionColabfoldLink, Advanced: true,
		Default:     "https://wwwuser.gwdg.de/~compbiol/colabfold/uniref30_2302.tar.gz",
		DisplayName: "UniRef30 ColabFold Link",
		Description: "Link to the UniRef30 database"},
	{Name: "colabfold_alphafold2_params_link", Kind: KindString, Section: SectionColabfoldLink, Advanced: true,
		DisplayName: "ColabFold AlphaFold2 Params Link",
		Description: "Link to the Alphafold2 parameters for Colabfold"},
	{Name: "colabfold_db_path", Kind: KindDir, Section: SectionColabfoldPath, Advanced: true,
		DisplayName: "ColabFold DB Path",
		Description: "Path to the Colabfold database"},
	{Name: "uniref30_colabfold_path", Kind: KindString, Section: SectionColabfoldPath, Advanced: true,
		DisplayName: "UniRef30 ColabFold Path",
		Description: "Path to the UniRef30 database"},
	{Name: "colabfold_alphafold2_params_path", Kind: KindDir, Section: SectionColabfoldPath, Advanced: true,
		DisplayName: "ColabFold AlphaFold2 Params Path",
		Description: "Path to the Alphafold2 parameters for Colabfold"},
	{Name: "colabfold_alphafold2_params_tags", Kind: KindString, Section: SectionColabfoldPath, Advanced: true,
		DisplayName: "ColabFold AlphaFold2 Params Tags",
		Description: "Dictionary with Alphafold2 parameters tags"},
	{Name: "esmfold_3B_v1", Kind: KindString, Section: SectionEsmfoldLink, Advanced: true,
		Default:     "https://dl.fbaipublicfiles.com/fair-esm/models/esmfold_3B_v1.pt",
		DisplayName: "ESMFold 3B v1",
		Description: "Link to the Esmfold 3B-v1 model"},
	{Name: "esm2_t36_3B_UR50D", Kind: KindString, Section: SectionEsmfoldLink, Advanced: true,
		Default:     "https://dl.fbaipublicfiles.com/fair-esm/models/esm2_t36_3B_UR50D.pt",
		DisplayName: "ESM2 t36 3B UR50D Model",
		Description: "Link to the Esmfold t36-3B-UR50D model"},
	{Name: "esm2_t36_3B_UR50D_contact_regression", Kind: KindString, Section: SectionEsmfoldLink, Advanced: true,
		Default:     "https://dl.fbaipublicfiles.com/fair-esm/regression/esm2_t36_3B_UR50D-contact-regression.pt",
		DisplayName: "ESM2 t36 3B UR50D Contact Regression",
		Description: "Link to the Esmfold t36-3B-UR50D-contact-regression model"},
	{Name: "esmfold_params_path", Kind: KindDir, Section: SectionEsmfoldPath, Advanced: true,
		DisplayName: "ESMFold Parameters Path",
		Description: "Path to the Esmfold parameters"},
	{Name: "multiqc_methods_description", Kind: KindFile, Section: SectionGeneric,
		DisplayName: "MultiQC Methods Description",
		Description: "Custom MultiQC yaml file containing HTML including a methods description."},
}

// Registry returns all parameter specs in wire order.
// The returned slice is shared; callers must not mutate it.
func Registry() []Spec {
	return registry
}

// LookupSpec returns the spec for name, or (zero, false) if unregistered.
func LookupSpec(name string) (Spec, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
