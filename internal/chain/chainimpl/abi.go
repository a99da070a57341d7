package chainimpl

const postABI = `[
	{"type":"function","name":"createPost","stateMutability":"nonpayable",
	 "inputs":[{"name":"content","type":"string"}],"outputs":[]}
]`

const identityABI = `[
	{"type":"function","name":"getHandleByAddress","stateMutability":"view",
	 "inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"isHandleTaken","stateMutability":"view",
	 "inputs":[{"name":"handle","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"mintHandle","stateMutability":"nonpayable",
	 "inputs":[{"name":"handle","type":"string"}],"outputs":[]}
]`
